// Package memory provides map-backed implementations of the repository
// interfaces. They mirror the postgres semantics closely enough for service
// tests: not-found reads return (nil, nil), follows and likes behave as
// sets, and order status updates are check-and-set.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository"
)

type follow struct {
	follower uuid.UUID
	followee uuid.UUID
}

type UserStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]domain.User
	follows map[follow]struct{}
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[uuid.UUID]domain.User),
		follows: make(map[follow]struct{}),
	}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrConflict
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	s.fillCounts(&u)
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			s.fillCounts(&u)
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) List(ctx context.Context, limit int) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		s.fillCounts(&u)
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (s *UserStore) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follows[follow{followerID, followeeID}] = struct{}{}
	return nil
}

func (s *UserStore) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.follows, follow{followerID, followeeID})
	return nil
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

func (s *UserStore) CountVerified(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.IsVerified {
			n++
		}
	}
	return n, nil
}

func (s *UserStore) fillCounts(u *domain.User) {
	u.FollowersCount, u.FollowingCount = 0, 0
	for f := range s.follows {
		if f.followee == u.ID {
			u.FollowersCount++
		}
		if f.follower == u.ID {
			u.FollowingCount++
		}
	}
}

type OrderStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
	seq    []uuid.UUID
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[uuid.UUID]domain.Order)}
}

func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = *order
	s.seq = append(s.seq, order.ID)
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []domain.Order
	for i := len(s.seq) - 1; i >= 0 && len(orders) < limit; i-- {
		if o := s.orders[s.seq[i]]; o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (s *OrderStore) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []domain.Order
	for i := len(s.seq) - 1; i >= 0 && len(orders) < limit; i-- {
		orders = append(orders, s.orders[s.seq[i]])
	}
	return orders, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, prev, next domain.OrderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != prev {
		return false, nil
	}
	o.Status = next
	s.orders[id] = o
	return true, nil
}

func (s *OrderStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders), nil
}

func (s *OrderStore) CompletedRevenue(ctx context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, o := range s.orders {
		if o.PaymentStatus == domain.PaymentCompleted {
			total += o.TotalAmount
		}
	}
	return total, nil
}

type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]domain.Product)}
}

func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = *product
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *ProductStore) GetMany(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var products []domain.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *ProductStore) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var products []domain.Product
	for _, p := range s.products {
		if !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.BrandID != nil && p.BrandID != *filter.BrandID {
			continue
		}
		if filter.Gender != "" && (p.Gender == nil || *p.Gender != filter.Gender) {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	if filter.Offset < len(products) {
		products = products[filter.Offset:]
	} else {
		products = nil
	}
	if len(products) > filter.Limit {
		products = products[:filter.Limit]
	}
	return products, nil
}

func (s *ProductStore) ListNewest(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.List(ctx, domain.ProductFilter{Limit: limit})
}

func (s *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = *product
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

func (s *ProductStore) CountActive(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.products {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

type BrandStore struct {
	mu     sync.RWMutex
	brands map[uuid.UUID]domain.Brand
}

func NewBrandStore() *BrandStore {
	return &BrandStore{brands: make(map[uuid.UUID]domain.Brand)}
}

func (s *BrandStore) Create(ctx context.Context, brand *domain.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands[brand.ID] = *brand
	return nil
}

func (s *BrandStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *BrandStore) List(ctx context.Context, status *domain.BrandStatus) ([]domain.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var brands []domain.Brand
	for _, b := range s.brands {
		if status != nil && b.Status != *status {
			continue
		}
		brands = append(brands, b)
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].CreatedAt.After(brands[j].CreatedAt) })
	return brands, nil
}

func (s *BrandStore) Update(ctx context.Context, brand *domain.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands[brand.ID] = *brand
	return nil
}

func (s *BrandStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.brands, id)
	return nil
}

func (s *BrandStore) CountByStatus(ctx context.Context, status domain.BrandStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.brands {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

type like struct {
	post uuid.UUID
	user uuid.UUID
}

type PostStore struct {
	mu       sync.RWMutex
	posts    map[uuid.UUID]domain.Post
	seq      []uuid.UUID
	likes    map[like]struct{}
	comments map[uuid.UUID][]domain.Comment
}

func NewPostStore() *PostStore {
	return &PostStore{
		posts:    make(map[uuid.UUID]domain.Post),
		likes:    make(map[like]struct{}),
		comments: make(map[uuid.UUID][]domain.Comment),
	}
}

func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = *post
	s.seq = append(s.seq, post.ID)
	return nil
}

func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	s.fillCounts(&p)
	return &p, nil
}

func (s *PostStore) ListFeed(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var posts []domain.Post
	for i := len(s.seq) - 1 - offset; i >= 0 && len(posts) < limit; i-- {
		p := s.posts[s.seq[i]]
		s.fillCounts(&p)
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *PostStore) HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.likes[like{postID, userID}]
	return ok, nil
}

func (s *PostStore) Like(ctx context.Context, postID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes[like{postID, userID}] = struct{}{}
	return nil
}

func (s *PostStore) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes, like{postID, userID})
	return nil
}

func (s *PostStore) AddComment(ctx context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.PostID] = append(s.comments[comment.PostID], *comment)
	return nil
}

func (s *PostStore) fillCounts(p *domain.Post) {
	p.LikesCount = 0
	for l := range s.likes {
		if l.post == p.ID {
			p.LikesCount++
		}
	}
	p.CommentsCount = len(s.comments[p.ID])
}

type wishlistKey struct {
	user    uuid.UUID
	product uuid.UUID
}

type WishlistStore struct {
	mu    sync.RWMutex
	items map[wishlistKey]int
	next  int
}

func NewWishlistStore() *WishlistStore {
	return &WishlistStore{items: make(map[wishlistKey]int)}
}

func (s *WishlistStore) Add(ctx context.Context, userID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := wishlistKey{userID, productID}
	if _, ok := s.items[key]; !ok {
		s.next++
		s.items[key] = s.next
	}
	return nil
}

func (s *WishlistStore) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, wishlistKey{userID, productID})
	return nil
}

func (s *WishlistStore) ProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type entry struct {
		id  uuid.UUID
		ord int
	}
	var entries []entry
	for key, ord := range s.items {
		if key.user == userID {
			entries = append(entries, entry{key.product, ord})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ord > entries[j].ord })
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.id)
	}
	return ids, nil
}
