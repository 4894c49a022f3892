package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository"
)

type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// Get resolves the user's wishlist to full products. Items whose product
// has since been deleted are silently dropped.
func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	ids, err := s.wishlistRepo.ProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	products, err := s.productRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.wishlistRepo.Add(ctx, userID, productID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.wishlistRepo.Remove(ctx, userID, productID)
}
