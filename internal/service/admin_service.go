package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository"
)

const adminUsersCap = 500

type AdminService struct {
	userRepo    repository.UserRepository
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		brandRepo:   brandRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

type Analytics struct {
	UsersCount       int     `json:"users_count"`
	InfluencersCount int     `json:"influencers_count"`
	BrandsCount      int     `json:"brands_count"`
	ProductsCount    int     `json:"products_count"`
	OrdersCount      int     `json:"orders_count"`
	TotalRevenue     float64 `json:"total_revenue"`
}

func (s *AdminService) Analytics(ctx context.Context, principal auth.Principal) (*Analytics, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	var out Analytics
	var err error
	if out.UsersCount, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if out.InfluencersCount, err = s.userRepo.CountVerified(ctx); err != nil {
		return nil, err
	}
	if out.BrandsCount, err = s.brandRepo.CountByStatus(ctx, domain.BrandApproved); err != nil {
		return nil, err
	}
	if out.ProductsCount, err = s.productRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if out.OrdersCount, err = s.orderRepo.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalRevenue, err = s.orderRepo.CompletedRevenue(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyInfluencer is the only role escalation path: admin marks a user as
// a verified influencer.
func (s *AdminService) VerifyInfluencer(ctx context.Context, principal auth.Principal, userID uuid.UUID) (*domain.User, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Role = domain.RoleInfluencer
	user.IsVerified = true
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("verifying influencer: %w", err)
	}
	return user, nil
}

func (s *AdminService) BanUser(ctx context.Context, principal auth.Principal, userID uuid.UUID) (*domain.User, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.IsBanned = true
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("banning user: %w", err)
	}
	return user, nil
}

func (s *AdminService) ListUsers(ctx context.Context, principal auth.Principal) ([]domain.User, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, adminUsersCap)
}
