package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository/memory"
)

func newAdminFixture(t *testing.T) (*AdminService, *memory.UserStore, *memory.OrderStore) {
	t.Helper()
	users := memory.NewUserStore()
	orders := memory.NewOrderStore()
	svc := NewAdminService(users, memory.NewBrandStore(), memory.NewProductStore(), orders)
	return svc, users, orders
}

func TestVerifyInfluencer(t *testing.T) {
	svc, users, _ := newAdminFixture(t)

	target := seedUser(t, users, "creator")
	require.Equal(t, domain.RoleUser, target.Role)

	updated, err := svc.VerifyInfluencer(context.Background(), adminPrincipal, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleInfluencer, updated.Role)
	assert.True(t, updated.IsVerified)

	_, err = svc.VerifyInfluencer(context.Background(), userPrincipal, target.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = svc.VerifyInfluencer(context.Background(), adminPrincipal, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBanUser(t *testing.T) {
	svc, users, _ := newAdminFixture(t)

	target := seedUser(t, users, "spammer")

	updated, err := svc.BanUser(context.Background(), adminPrincipal, target.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsBanned)

	_, err = svc.BanUser(context.Background(), userPrincipal, target.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestAnalyticsRevenueCountsCompletedOnly(t *testing.T) {
	svc, users, orders := newAdminFixture(t)

	buyer := seedUser(t, users, "buyer")

	now := time.Now()
	require.NoError(t, orders.Create(context.Background(), &domain.Order{
		ID: uuid.New(), UserID: buyer.ID, TotalAmount: 100,
		Status: domain.OrderConfirmed, PaymentStatus: domain.PaymentCompleted,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, orders.Create(context.Background(), &domain.Order{
		ID: uuid.New(), UserID: buyer.ID, TotalAmount: 50,
		Status: domain.OrderPending, PaymentStatus: domain.PaymentPending,
		CreatedAt: now, UpdatedAt: now,
	}))

	analytics, err := svc.Analytics(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.UsersCount)
	assert.Equal(t, 2, analytics.OrdersCount)
	assert.Equal(t, 100.0, analytics.TotalRevenue)

	_, err = svc.Analytics(context.Background(), userPrincipal)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestListUsersRequiresAdmin(t *testing.T) {
	svc, users, _ := newAdminFixture(t)

	seedUser(t, users, "alice")
	seedUser(t, users, "bob")

	list, err := svc.ListUsers(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListUsers(context.Background(), userPrincipal)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}
