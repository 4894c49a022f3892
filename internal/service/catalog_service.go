package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository"
)

var (
	ErrBrandNotFound     = errors.New("brand not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrUnknownBrandState = errors.New("unknown brand status")
)

const (
	productListCap  = 100
	trendingListCap = 20
)

type CatalogService struct {
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
}

func NewCatalogService(brandRepo repository.BrandRepository, productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{brandRepo: brandRepo, productRepo: productRepo}
}

type BrandInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Logo        *string `json:"logo"`
	Banner      *string `json:"banner"`
}

type BrandUpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Logo        *string `json:"logo"`
	Banner      *string `json:"banner"`
	Status      *string `json:"status"`
}

type ProductInput struct {
	BrandID     uuid.UUID `json:"brand_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Subcategory *string   `json:"subcategory"`
	Colors      []string  `json:"colors"`
	Sizes       []string  `json:"sizes"`
	Images      []string  `json:"images"`
	Gender      *string   `json:"gender"`
}

type ProductUpdateInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	Category    *string   `json:"category"`
	Subcategory *string   `json:"subcategory"`
	Colors      *[]string `json:"colors"`
	Sizes       *[]string `json:"sizes"`
	Images      *[]string `json:"images"`
	IsActive    *bool     `json:"is_active"`
	Gender      *string   `json:"gender"`
}

// ListBrands filters by status; "all" lists everything, empty defaults to
// approved.
func (s *CatalogService) ListBrands(ctx context.Context, statusFilter string) ([]domain.Brand, error) {
	if statusFilter == "all" {
		return s.brandRepo.List(ctx, nil)
	}
	if statusFilter == "" {
		statusFilter = string(domain.BrandApproved)
	}
	status, ok := domain.ParseBrandStatus(statusFilter)
	if !ok {
		return nil, ErrUnknownBrandState
	}
	return s.brandRepo.List(ctx, &status)
}

func (s *CatalogService) GetBrand(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

func (s *CatalogService) CreateBrand(ctx context.Context, principal auth.Principal, input BrandInput) (*domain.Brand, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	brand := &domain.Brand{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Logo:        input.Logo,
		Banner:      input.Banner,
		Status:      domain.BrandApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("creating brand: %w", err)
	}
	return brand, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, principal auth.Principal, id uuid.UUID, input BrandUpdateInput) (*domain.Brand, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	if input.Name != nil {
		brand.Name = *input.Name
	}
	if input.Description != nil {
		brand.Description = *input.Description
	}
	if input.Category != nil {
		brand.Category = *input.Category
	}
	if input.Logo != nil {
		brand.Logo = input.Logo
	}
	if input.Banner != nil {
		brand.Banner = input.Banner
	}
	if input.Status != nil {
		status, ok := domain.ParseBrandStatus(*input.Status)
		if !ok {
			return nil, ErrUnknownBrandState
		}
		brand.Status = status
	}
	brand.UpdatedAt = time.Now()

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("updating brand: %w", err)
	}
	return brand, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return err
	}

	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	return s.brandRepo.Delete(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if filter.Limit <= 0 || filter.Limit > productListCap {
		filter.Limit = productListCap
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.productRepo.List(ctx, filter)
}

// TrendingProducts returns the most recently added active products.
func (s *CatalogService) TrendingProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListNewest(ctx, trendingListCap)
}

func (s *CatalogService) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListNewest(ctx, trendingListCap)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, principal auth.Principal, input ProductInput) (*domain.Product, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	brand, err := s.brandRepo.GetByID(ctx, input.BrandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		BrandID:     input.BrandID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Colors:      input.Colors,
		Sizes:       input.Sizes,
		Images:      input.Images,
		Gender:      input.Gender,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Colors == nil {
		product.Colors = []string{}
	}
	if product.Sizes == nil {
		product.Sizes = []string{}
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, principal auth.Principal, id uuid.UUID, input ProductUpdateInput) (*domain.Product, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Subcategory != nil {
		product.Subcategory = input.Subcategory
	}
	if input.Colors != nil {
		product.Colors = *input.Colors
	}
	if input.Sizes != nil {
		product.Sizes = *input.Sizes
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Gender != nil {
		product.Gender = input.Gender
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, id)
}
