package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository/memory"
)

func seedProduct(t *testing.T, products *memory.ProductStore, name string) *domain.Product {
	t.Helper()
	now := time.Now()
	p := &domain.Product{
		ID:        uuid.New(),
		BrandID:   uuid.New(),
		Name:      name,
		Price:     29.99,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, products.Create(context.Background(), p))
	return p
}

func TestWishlistAddGetRemove(t *testing.T) {
	products := memory.NewProductStore()
	svc := NewWishlistService(memory.NewWishlistStore(), products)
	userID := uuid.New()

	tee := seedProduct(t, products, "Classic White Tee")
	jacket := seedProduct(t, products, "Denim Jacket")

	require.NoError(t, svc.Add(context.Background(), userID, tee.ID))
	require.NoError(t, svc.Add(context.Background(), userID, jacket.ID))
	// Re-adding is a no-op, the wishlist is a set.
	require.NoError(t, svc.Add(context.Background(), userID, tee.ID))

	list, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Remove(context.Background(), userID, tee.ID))
	list, err = svc.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, jacket.ID, list[0].ID)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc := NewWishlistService(memory.NewWishlistStore(), memory.NewProductStore())

	err := svc.Add(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistEmptyIsNotNil(t *testing.T) {
	svc := NewWishlistService(memory.NewWishlistStore(), memory.NewProductStore())

	list, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestWishlistDropsDeletedProducts(t *testing.T) {
	products := memory.NewProductStore()
	svc := NewWishlistService(memory.NewWishlistStore(), products)
	userID := uuid.New()

	tee := seedProduct(t, products, "Classic White Tee")
	require.NoError(t, svc.Add(context.Background(), userID, tee.ID))
	require.NoError(t, products.Delete(context.Background(), tee.ID))

	list, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
