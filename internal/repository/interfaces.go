package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/skyriting/skyriting/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, limit int) ([]domain.User, error)
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountVerified(ctx context.Context) (int, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Order, error)
	ListAll(ctx context.Context, limit int) ([]domain.Order, error)
	// UpdateStatus atomically moves an order from prev to next and reports
	// whether the write was applied. A false return means the order was not
	// in prev at write time (or does not exist).
	UpdateStatus(ctx context.Context, id uuid.UUID, prev, next domain.OrderStatus) (bool, error)
	Count(ctx context.Context) (int, error)
	CompletedRevenue(ctx context.Context) (float64, error)
}

type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	List(ctx context.Context, status *domain.BrandStatus) ([]domain.Brand, error)
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status domain.BrandStatus) (int, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	ListNewest(ctx context.Context, limit int) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActive(ctx context.Context) (int, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListFeed(ctx context.Context, limit, offset int) ([]domain.Post, error)
	HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	AddComment(ctx context.Context, comment *domain.Comment) error
}

type WishlistRepository interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	ProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
