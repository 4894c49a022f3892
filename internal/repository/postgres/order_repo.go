package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyriting/skyriting/internal/domain"
)

const orderColumns = `id, user_id, items, total_amount, shipping_address, payment_method,
	payment_ref, status, payment_status, created_at, updated_at`

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func (r *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, user_id, items, total_amount, shipping_address, payment_method,
			payment_ref, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		order.ID, order.UserID, order.Items, order.TotalAmount, order.ShippingAddress,
		order.PaymentMethod, order.PaymentRef, order.Status, order.PaymentStatus,
		order.CreatedAt, order.UpdatedAt,
	)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id).Scan(
		&o.ID, &o.UserID, &o.Items, &o.TotalAmount, &o.ShippingAddress, &o.PaymentMethod,
		&o.PaymentRef, &o.Status, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Order, error) {
	return r.list(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2",
		userID, limit)
}

func (r *OrderRepo) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.list(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC LIMIT $1",
		limit)
}

// UpdateStatus is the check-and-set behind the status state machine: the
// write only lands if the order is still in prev, so two concurrent
// transitions cannot both succeed from the same prior state.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, prev, next domain.OrderStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, prev, next,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *OrderRepo) CompletedRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT coalesce(sum(total_amount), 0) FROM orders WHERE payment_status = 'completed'`,
	).Scan(&total)
	return total, err
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Items, &o.TotalAmount, &o.ShippingAddress, &o.PaymentMethod,
			&o.PaymentRef, &o.Status, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
