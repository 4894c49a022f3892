package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyriting/skyriting/internal/domain"
)

const brandColumns = `id, name, description, category, logo, banner, status, created_at, updated_at`

type BrandRepo struct {
	pool *pgxpool.Pool
}

func NewBrandRepo(pool *pgxpool.Pool) *BrandRepo {
	return &BrandRepo{pool: pool}
}

func (r *BrandRepo) Create(ctx context.Context, brand *domain.Brand) error {
	query := `
		INSERT INTO brands (id, name, description, category, logo, banner, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		brand.ID, brand.Name, brand.Description, brand.Category, brand.Logo,
		brand.Banner, brand.Status, brand.CreatedAt, brand.UpdatedAt,
	)
	return err
}

func (r *BrandRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	var b domain.Brand
	err := r.pool.QueryRow(ctx, "SELECT "+brandColumns+" FROM brands WHERE id = $1", id).Scan(
		&b.ID, &b.Name, &b.Description, &b.Category, &b.Logo, &b.Banner,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepo) List(ctx context.Context, status *domain.BrandStatus) ([]domain.Brand, error) {
	query := "SELECT " + brandColumns + " FROM brands"
	var args []any
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Description, &b.Category, &b.Logo, &b.Banner,
			&b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *BrandRepo) Update(ctx context.Context, brand *domain.Brand) error {
	query := `
		UPDATE brands
		SET name = $2, description = $3, category = $4, logo = $5, banner = $6, status = $7, updated_at = $8
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		brand.ID, brand.Name, brand.Description, brand.Category, brand.Logo,
		brand.Banner, brand.Status, brand.UpdatedAt,
	)
	return err
}

func (r *BrandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	return err
}

func (r *BrandRepo) CountByStatus(ctx context.Context, status domain.BrandStatus) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM brands WHERE status = $1`, status).Scan(&n)
	return n, err
}
