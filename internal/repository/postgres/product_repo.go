package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyriting/skyriting/internal/domain"
)

const productColumns = `id, brand_id, name, description, price, stock, category, subcategory,
	colors, sizes, images, gender, is_active, created_at, updated_at`

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, brand_id, name, description, price, stock, category, subcategory,
			colors, sizes, images, gender, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.BrandID, product.Name, product.Description, product.Price,
		product.Stock, product.Category, product.Subcategory, product.Colors,
		product.Sizes, product.Images, product.Gender, product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	)
	return err
}

func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepo) GetMany(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, "SELECT "+productColumns+" FROM products WHERE id = ANY($1)", ids)
}

func (r *ProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE is_active"
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.BrandID != nil {
		args = append(args, *filter.BrandID)
		query += fmt.Sprintf(" AND brand_id = $%d", len(args))
	}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		query += fmt.Sprintf(" AND gender = $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.list(ctx, query, args...)
}

func (r *ProductRepo) ListNewest(ctx context.Context, limit int) ([]domain.Product, error) {
	return r.list(ctx,
		"SELECT "+productColumns+" FROM products WHERE is_active ORDER BY created_at DESC LIMIT $1",
		limit)
}

func (r *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, category = $6, subcategory = $7,
			colors = $8, sizes = $9, images = $10, gender = $11, is_active = $12, updated_at = $13
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.Category, product.Subcategory, product.Colors, product.Sizes,
		product.Images, product.Gender, product.IsActive, product.UpdatedAt,
	)
	return err
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *ProductRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE is_active`).Scan(&n)
	return n, err
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.BrandID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.Subcategory, &p.Colors, &p.Sizes, &p.Images,
		&p.Gender, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
