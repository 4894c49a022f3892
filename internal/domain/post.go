package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"user_id"`
	Content        string      `json:"content"`
	Media          []string    `json:"media"`
	TaggedProducts []uuid.UUID `json:"tagged_products"`
	ViewsCount     int         `json:"views_count"`
	LikesCount     int         `json:"likes_count"`
	CommentsCount  int         `json:"comments_count"`
	CreatedAt      time.Time   `json:"created_at"`

	// Author is filled in by feed queries.
	Author *Profile `json:"user,omitempty"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
