package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/email"
	"github.com/skyriting/skyriting/internal/repository/memory"
)

type stubGateway struct {
	settled bool
	err     error
	calls   int
}

func (g *stubGateway) IsSettled(ctx context.Context, ref string) (bool, error) {
	g.calls++
	return g.settled, g.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newOrderFixture(t *testing.T, gateway *stubGateway) (*OrderService, *memory.OrderStore, uuid.UUID) {
	t.Helper()

	users := memory.NewUserStore()
	orders := memory.NewOrderStore()

	buyer := &domain.User{
		ID:        uuid.New(),
		Email:     "buyer@example.com",
		Name:      "Buyer",
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, users.Create(context.Background(), buyer))

	svc := NewOrderService(orders, users, gateway, email.Noop{}, testLogger())
	return svc, orders, buyer.ID
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Name: "Classic White Tee", Quantity: 2, Price: 29.99},
			{ProductID: uuid.New(), Name: "Denim Jacket", Quantity: 1, Price: 89.99},
		},
		TotalAmount: 149.97,
		ShippingAddress: domain.ShippingAddress{
			Name: "Buyer", Street: "1 Main St", City: "Springfield", Zip: "12345", Country: "US",
		},
	}
}

func TestPlaceOrderSettledPayment(t *testing.T) {
	gateway := &stubGateway{settled: true}
	svc, _, buyerID := newOrderFixture(t, gateway)

	input := validInput()
	input.PaymentRef = "pi_123"

	order, err := svc.Place(context.Background(), buyerID, input)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderConfirmed, order.Status)
	assert.Equal(t, domain.PaymentCompleted, order.PaymentStatus)
	require.NotNil(t, order.PaymentRef)
	assert.Equal(t, "pi_123", *order.PaymentRef)
	assert.Equal(t, 1, gateway.calls)
}

func TestPlaceOrderUnsettledPayment(t *testing.T) {
	gateway := &stubGateway{settled: false}
	svc, _, buyerID := newOrderFixture(t, gateway)

	input := validInput()
	input.PaymentRef = "pi_123"

	order, err := svc.Place(context.Background(), buyerID, input)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
}

func TestPlaceOrderNoPaymentRef(t *testing.T) {
	gateway := &stubGateway{settled: true}
	svc, _, buyerID := newOrderFixture(t, gateway)

	order, err := svc.Place(context.Background(), buyerID, validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.Nil(t, order.PaymentRef)
	assert.Equal(t, 0, gateway.calls, "gateway must not be consulted without a reference")
	assert.Equal(t, "mock", order.PaymentMethod)
}

func TestPlaceOrderGatewayErrorDegradesToPending(t *testing.T) {
	gateway := &stubGateway{settled: true, err: errors.New("connection refused")}
	svc, _, buyerID := newOrderFixture(t, gateway)

	input := validInput()
	input.PaymentRef = "pi_123"

	order, err := svc.Place(context.Background(), buyerID, input)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
}

func TestPlaceOrderTotalMismatch(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})

	input := validInput()
	input.TotalAmount = 199.98

	_, err := svc.Place(context.Background(), buyerID, input)
	assert.ErrorIs(t, err, ErrTotalMismatch)
}

func TestPlaceOrderTotalWithinTolerance(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})

	input := validInput()
	input.TotalAmount = 149.975

	_, err := svc.Place(context.Background(), buyerID, input)
	assert.NoError(t, err)
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})

	input := validInput()
	input.Items = nil

	_, err := svc.Place(context.Background(), buyerID, input)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPlaceOrderBadQuantity(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})

	input := validInput()
	input.Items[0].Quantity = 0

	_, err := svc.Place(context.Background(), buyerID, input)
	assert.ErrorIs(t, err, ErrBadQuantity)

	input.Items[0].Quantity = -1
	_, err = svc.Place(context.Background(), buyerID, input)
	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestTransitionChain(t *testing.T) {
	gateway := &stubGateway{settled: true}
	svc, _, buyerID := newOrderFixture(t, gateway)
	adminPrincipal := auth.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	input := validInput()
	input.PaymentRef = "pi_123"
	order, err := svc.Place(context.Background(), buyerID, input)
	require.NoError(t, err)
	require.Equal(t, domain.OrderConfirmed, order.Status)

	order, err = svc.Transition(context.Background(), adminPrincipal, order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, order.Status)

	order, err = svc.Transition(context.Background(), adminPrincipal, order.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, order.Status)

	// Delivered is terminal.
	_, err = svc.Transition(context.Background(), adminPrincipal, order.ID, "cancelled")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionSkippingStateFails(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})
	adminPrincipal := auth.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	order, err := svc.Place(context.Background(), buyerID, validInput())
	require.NoError(t, err)
	require.Equal(t, domain.OrderPending, order.Status)

	_, err = svc.Transition(context.Background(), adminPrincipal, order.ID, "shipped")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Transition(context.Background(), adminPrincipal, order.ID, "pending")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})
	adminPrincipal := auth.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	order, err := svc.Place(context.Background(), buyerID, validInput())
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), adminPrincipal, order.ID, "returned")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTransitionRequiresAdmin(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})

	order, err := svc.Place(context.Background(), buyerID, validInput())
	require.NoError(t, err)

	// Even the order's owner cannot transition it.
	owner := auth.Principal{UserID: buyerID, Role: domain.RoleUser}
	_, err = svc.Transition(context.Background(), owner, order.ID, "confirmed")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	influencer := auth.Principal{UserID: uuid.New(), Role: domain.RoleInfluencer}
	_, err = svc.Transition(context.Background(), influencer, order.ID, "confirmed")
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestTransitionOrderNotFound(t *testing.T) {
	svc, _, _ := newOrderFixture(t, &stubGateway{})
	adminPrincipal := auth.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	_, err := svc.Transition(context.Background(), adminPrincipal, uuid.New(), "confirmed")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOwnerAndAdmin(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})

	order, err := svc.Place(context.Background(), buyerID, validInput())
	require.NoError(t, err)

	owner := auth.Principal{UserID: buyerID, Role: domain.RoleUser}
	got, err := svc.Get(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	adminPrincipal := auth.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}
	_, err = svc.Get(context.Background(), adminPrincipal, order.ID)
	assert.NoError(t, err)

	stranger := auth.Principal{UserID: uuid.New(), Role: domain.RoleUser}
	_, err = svc.Get(context.Background(), stranger, order.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestGetNotFound(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})

	owner := auth.Principal{UserID: buyerID, Role: domain.RoleUser}
	_, err := svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListMineNewestFirstAndScoped(t *testing.T) {
	svc, orders, buyerID := newOrderFixture(t, &stubGateway{})

	first, err := svc.Place(context.Background(), buyerID, validInput())
	require.NoError(t, err)
	second, err := svc.Place(context.Background(), buyerID, validInput())
	require.NoError(t, err)

	// Another user's order must not leak into the listing.
	other := &domain.Order{
		ID: uuid.New(), UserID: uuid.New(), Status: domain.OrderPending,
		PaymentStatus: domain.PaymentPending, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, orders.Create(context.Background(), other))

	mine, err := svc.ListMine(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
}

func TestListAllRequiresAdmin(t *testing.T) {
	svc, _, buyerID := newOrderFixture(t, &stubGateway{})

	_, err := svc.Place(context.Background(), buyerID, validInput())
	require.NoError(t, err)

	user := auth.Principal{UserID: buyerID, Role: domain.RoleUser}
	_, err = svc.ListAll(context.Background(), user)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	adminPrincipal := auth.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}
	all, err := svc.ListAll(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

type hungOrderStore struct {
	*memory.OrderStore
}

func (s *hungOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// A store call that never returns must fail once the request deadline
// expires instead of holding the caller forever.
func TestGetHonorsContextDeadline(t *testing.T) {
	svc, orders, buyerID := newOrderFixture(t, &stubGateway{settled: true})
	svc.orderRepo = &hungOrderStore{OrderStore: orders}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Get(ctx, auth.Principal{UserID: buyerID, Role: domain.RoleUser}, uuid.New())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
