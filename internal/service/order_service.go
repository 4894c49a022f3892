package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/email"
	"github.com/skyriting/skyriting/internal/metrics"
	"github.com/skyriting/skyriting/internal/payment"
	"github.com/skyriting/skyriting/internal/repository"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrBadQuantity       = errors.New("item quantity must be positive")
	ErrTotalMismatch     = errors.New("total does not match items")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// totalTolerance absorbs float rounding between the client's total and the
// server-side recomputation; anything larger is rejected as tampering.
const totalTolerance = 0.01

const (
	userOrdersCap  = 100
	adminOrdersCap = 500
)

// gatewayTimeout bounds the settlement check so a slow payment provider
// cannot block order placement.
const gatewayTimeout = 3 * time.Second

type OrderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	gateway   payment.IntentGateway
	mailer    email.Sender
	log       *logrus.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	gateway payment.IntentGateway,
	mailer email.Sender,
	log *logrus.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		gateway:   gateway,
		mailer:    mailer,
		log:       log,
	}
}

type PlaceOrderInput struct {
	Items           []domain.OrderItem     `json:"items"`
	TotalAmount     float64                `json:"total_amount"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	PaymentRef      string                 `json:"payment_ref"`
}

// Place creates a new order for the user. When a payment reference is
// supplied and the gateway confirms it as settled, the order starts out
// confirmed/completed; in every other case (no reference, unsettled
// reference, gateway unreachable) it starts pending/pending. Two concurrent
// calls always create two distinct orders; there is no dedup key.
func (s *OrderService) Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total float64
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrBadQuantity
		}
		total += item.Price * float64(item.Quantity)
	}
	if math.Abs(total-input.TotalAmount) > totalTolerance {
		return nil, ErrTotalMismatch
	}

	method := input.PaymentMethod
	if method == "" {
		method = "mock"
	}

	status := domain.OrderPending
	paymentStatus := domain.PaymentPending
	var paymentRef *string
	if input.PaymentRef != "" {
		paymentRef = &input.PaymentRef
		if s.settled(ctx, input.PaymentRef) {
			status = domain.OrderConfirmed
			paymentStatus = domain.PaymentCompleted
		}
	}

	now := time.Now()
	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           input.Items,
		TotalAmount:     input.TotalAmount,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   method,
		PaymentRef:      paymentRef,
		Status:          status,
		PaymentStatus:   paymentStatus,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	metrics.RecordOrderPlaced(string(paymentStatus))
	s.notify(userID, order, s.mailer.SendOrderConfirmation)

	return order, nil
}

// settled asks the gateway whether the reference has been captured. Any
// error degrades to false so a flaky provider never blocks placement.
func (s *OrderService) settled(ctx context.Context, ref string) bool {
	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	settled, err := s.gateway.IsSettled(gctx, ref)
	if err != nil {
		s.log.WithError(err).WithField("payment_ref", ref).Warn("payment gateway check failed, treating as unsettled")
		return false
	}
	return settled
}

// Transition moves an order to newStatus. Only admins may transition, and
// only along the state machine; the write is check-and-set against the
// status read here, so a concurrent transition from the same prior state
// loses cleanly instead of double-applying.
func (s *OrderService) Transition(ctx context.Context, principal auth.Principal, orderID uuid.UUID, newStatus string) (*domain.Order, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	next, ok := domain.ParseOrderStatus(newStatus)
	if !ok {
		return nil, ErrUnknownStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	applied, err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, next)
	if err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}
	if !applied {
		// Lost a race: someone moved the order since we read it.
		return nil, ErrInvalidTransition
	}

	order.Status = next
	order.UpdatedAt = time.Now()

	metrics.RecordOrderTransition(string(next))
	s.notify(order.UserID, order, s.mailer.SendOrderStatusUpdate)

	return order, nil
}

// Get returns the order if the principal owns it or is an admin.
func (s *OrderService) Get(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := auth.RequireOwnerOrRole(principal, order.UserID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return order, nil
}

// ListMine returns the user's orders, newest first, capped.
func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID, userOrdersCap)
}

// ListAll returns all orders for admins, newest first, capped.
func (s *OrderService) ListAll(ctx context.Context, principal auth.Principal) ([]domain.Order, error) {
	if err := auth.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.orderRepo.ListAll(ctx, adminOrdersCap)
}

// notify emails the order's owner in the background; failures only log.
func (s *OrderService) notify(userID uuid.UUID, order *domain.Order, send func(string, *domain.Order) error) {
	snapshot := *order
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil || user == nil {
			s.log.WithField("user_id", userID).Warn("skipping order email, owner lookup failed")
			return
		}
		_ = send(user.Email, &snapshot)
	}()
}
