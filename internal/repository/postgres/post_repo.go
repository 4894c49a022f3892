package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyriting/skyriting/internal/domain"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, user_id, content, media, tagged_products, views_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		post.ID, post.UserID, post.Content, post.Media, post.TaggedProducts,
		post.ViewsCount, post.CreatedAt,
	)
	return err
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query := `
		SELECT p.id, p.user_id, p.content, p.media, p.tagged_products, p.views_count, p.created_at,
			(SELECT count(*) FROM post_likes l WHERE l.post_id = p.id),
			(SELECT count(*) FROM post_comments c WHERE c.post_id = p.id)
		FROM posts p
		WHERE p.id = $1`

	var p domain.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Content, &p.Media, &p.TaggedProducts,
		&p.ViewsCount, &p.CreatedAt, &p.LikesCount, &p.CommentsCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) ListFeed(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	query := `
		SELECT p.id, p.user_id, p.content, p.media, p.tagged_products, p.views_count, p.created_at,
			(SELECT count(*) FROM post_likes l WHERE l.post_id = p.id),
			(SELECT count(*) FROM post_comments c WHERE c.post_id = p.id),
			u.name, u.profile_photo, u.role, u.is_verified
		FROM posts p
		JOIN users u ON p.user_id = u.id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		author := domain.Profile{}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Content, &p.Media, &p.TaggedProducts,
			&p.ViewsCount, &p.CreatedAt, &p.LikesCount, &p.CommentsCount,
			&author.Name, &author.ProfilePhoto, &author.Role, &author.IsVerified,
		); err != nil {
			return nil, err
		}
		author.ID = p.UserID
		p.Author = &author
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepo) HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&liked)
	return liked, err
}

func (r *PostRepo) Like(ctx context.Context, postID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, userID,
	)
	return err
}

func (r *PostRepo) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	return err
}

func (r *PostRepo) AddComment(ctx context.Context, comment *domain.Comment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO post_comments (id, post_id, user_id, user_name, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID, comment.PostID, comment.UserID, comment.UserName,
		comment.Content, comment.CreatedAt,
	)
	return err
}
