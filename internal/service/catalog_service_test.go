package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository/memory"
)

var adminPrincipal = auth.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}
var userPrincipal = auth.Principal{UserID: uuid.New(), Role: domain.RoleUser}

func newCatalogFixture() *CatalogService {
	return NewCatalogService(memory.NewBrandStore(), memory.NewProductStore())
}

func TestCreateBrandRequiresAdmin(t *testing.T) {
	svc := newCatalogFixture()

	_, err := svc.CreateBrand(context.Background(), userPrincipal, BrandInput{Name: "Urban Style"})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	brand, err := svc.CreateBrand(context.Background(), adminPrincipal, BrandInput{
		Name: "Urban Style", Description: "Contemporary urban fashion", Category: "Streetwear",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BrandApproved, brand.Status)
}

func TestListBrandsStatusFilter(t *testing.T) {
	svc := newCatalogFixture()

	brand, err := svc.CreateBrand(context.Background(), adminPrincipal, BrandInput{Name: "Urban Style"})
	require.NoError(t, err)

	rejected := "rejected"
	_, err = svc.UpdateBrand(context.Background(), adminPrincipal, brand.ID, BrandUpdateInput{Status: &rejected})
	require.NoError(t, err)

	approved, err := svc.ListBrands(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, approved)

	all, err := svc.ListBrands(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	rejectedList, err := svc.ListBrands(context.Background(), "rejected")
	require.NoError(t, err)
	assert.Len(t, rejectedList, 1)

	_, err = svc.ListBrands(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrUnknownBrandState)
}

func TestUpdateBrandUnknownStatus(t *testing.T) {
	svc := newCatalogFixture()

	brand, err := svc.CreateBrand(context.Background(), adminPrincipal, BrandInput{Name: "Urban Style"})
	require.NoError(t, err)

	bogus := "archived"
	_, err = svc.UpdateBrand(context.Background(), adminPrincipal, brand.ID, BrandUpdateInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrUnknownBrandState)
}

func TestCreateProductRequiresExistingBrand(t *testing.T) {
	svc := newCatalogFixture()

	_, err := svc.CreateProduct(context.Background(), adminPrincipal, ProductInput{
		BrandID: uuid.New(), Name: "Classic White Tee", Price: 29.99,
	})
	assert.ErrorIs(t, err, ErrBrandNotFound)

	brand, err := svc.CreateBrand(context.Background(), adminPrincipal, BrandInput{Name: "Urban Style"})
	require.NoError(t, err)

	product, err := svc.CreateProduct(context.Background(), adminPrincipal, ProductInput{
		BrandID: brand.ID, Name: "Classic White Tee", Price: 29.99, Stock: 50,
	})
	require.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.NotNil(t, product.Colors)
	assert.NotNil(t, product.Sizes)
	assert.NotNil(t, product.Images)
}

func TestProductLifecycle(t *testing.T) {
	svc := newCatalogFixture()

	brand, err := svc.CreateBrand(context.Background(), adminPrincipal, BrandInput{Name: "Urban Style"})
	require.NoError(t, err)

	product, err := svc.CreateProduct(context.Background(), adminPrincipal, ProductInput{
		BrandID: brand.ID, Name: "Denim Jacket", Price: 89.99, Stock: 10,
	})
	require.NoError(t, err)

	price := 79.99
	updated, err := svc.UpdateProduct(context.Background(), adminPrincipal, product.ID, ProductUpdateInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 79.99, updated.Price)
	assert.Equal(t, "Denim Jacket", updated.Name)

	_, err = svc.UpdateProduct(context.Background(), userPrincipal, product.ID, ProductUpdateInput{Price: &price})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	require.NoError(t, svc.DeleteProduct(context.Background(), adminPrincipal, product.ID))
	_, err = svc.GetProduct(context.Background(), product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProductsCapsLimit(t *testing.T) {
	svc := newCatalogFixture()

	brand, err := svc.CreateBrand(context.Background(), adminPrincipal, BrandInput{Name: "Urban Style"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateProduct(context.Background(), adminPrincipal, ProductInput{
			BrandID: brand.ID, Name: "Tee", Price: 29.99,
		})
		require.NoError(t, err)
	}

	products, err := svc.ListProducts(context.Background(), domain.ProductFilter{Limit: 100000})
	require.NoError(t, err)
	assert.Len(t, products, 3)

	products, err = svc.ListProducts(context.Background(), domain.ProductFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
