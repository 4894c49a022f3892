package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotVerified  = errors.New("only verified influencers can tag products")
)

const feedPageCap = 50

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

type CreatePostInput struct {
	Content        string      `json:"content"`
	Media          []string    `json:"media"`
	TaggedProducts []uuid.UUID `json:"tagged_products"`
}

func (s *PostService) Feed(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 || limit > feedPageCap {
		limit = feedPageCap
	}
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.ListFeed(ctx, limit, offset)
}

func (s *PostService) Create(ctx context.Context, principal auth.Principal, input CreatePostInput) (*domain.Post, error) {
	if err := auth.RequireNotBanned(principal); err != nil {
		return nil, err
	}

	if len(input.TaggedProducts) > 0 {
		user, err := s.userRepo.GetByID(ctx, principal.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		if !user.IsVerified {
			return nil, ErrNotVerified
		}
	}

	post := &domain.Post{
		ID:             uuid.New(),
		UserID:         principal.UserID,
		Content:        input.Content,
		Media:          input.Media,
		TaggedProducts: input.TaggedProducts,
		CreatedAt:      time.Now(),
	}
	if post.Media == nil {
		post.Media = []string{}
	}
	if post.TaggedProducts == nil {
		post.TaggedProducts = []uuid.UUID{}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

// ToggleLike likes the post, or removes the like if it is already there.
// Returns whether the post ends up liked.
func (s *PostService) ToggleLike(ctx context.Context, principal auth.Principal, postID uuid.UUID) (bool, error) {
	if err := auth.RequireNotBanned(principal); err != nil {
		return false, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrPostNotFound
	}

	liked, err := s.postRepo.HasLiked(ctx, postID, principal.UserID)
	if err != nil {
		return false, err
	}
	if liked {
		return false, s.postRepo.Unlike(ctx, postID, principal.UserID)
	}
	return true, s.postRepo.Like(ctx, postID, principal.UserID)
}

func (s *PostService) Comment(ctx context.Context, principal auth.Principal, postID uuid.UUID, content string) (*domain.Comment, error) {
	if err := auth.RequireNotBanned(principal); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    principal.UserID,
		UserName:  user.Name,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}
	return comment, nil
}
