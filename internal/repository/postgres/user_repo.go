package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository"
)

const userColumns = `u.id, u.email, u.name, u.password_hash, u.gender, u.bio, u.profile_photo,
	u.interests, u.style_preferences, u.role, u.is_verified, u.is_banned, u.created_at, u.updated_at,
	(SELECT count(*) FROM follows f WHERE f.followee_id = u.id) AS followers_count,
	(SELECT count(*) FROM follows f WHERE f.follower_id = u.id) AS following_count`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, gender, bio, profile_photo,
			interests, style_preferences, role, is_verified, is_banned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Gender, user.Bio,
		user.ProfilePhoto, user.Interests, user.StylePreferences, user.Role,
		user.IsVerified, user.IsBanned, user.CreatedAt, user.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrConflict
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users u WHERE u.id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users u WHERE lower(u.email) = lower($1)", email)
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, gender = $3, bio = $4, profile_photo = $5, interests = $6,
			style_preferences = $7, role = $8, is_verified = $9, is_banned = $10, updated_at = $11
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Gender, user.Bio, user.ProfilePhoto,
		user.Interests, user.StylePreferences, user.Role,
		user.IsVerified, user.IsBanned, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) List(ctx context.Context, limit int) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+userColumns+" FROM users u ORDER BY u.created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepo) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	// ON CONFLICT keeps the relation a set under concurrent follows.
	_, err := r.pool.Exec(ctx,
		`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		followerID, followeeID,
	)
	return err
}

func (r *UserRepo) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	return err
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepo) CountVerified(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE is_verified`).Scan(&n)
	return n, err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUserRow(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanUserRow(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Gender, &u.Bio, &u.ProfilePhoto,
		&u.Interests, &u.StylePreferences, &u.Role, &u.IsVerified, &u.IsBanned,
		&u.CreatedAt, &u.UpdatedAt, &u.FollowersCount, &u.FollowingCount,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
