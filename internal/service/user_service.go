package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileInput struct {
	Name             *string   `json:"name"`
	Bio              *string   `json:"bio"`
	ProfilePhoto     *string   `json:"profile_photo"`
	Interests        *[]string `json:"interests"`
	StylePreferences *[]string `json:"style_preferences"`
	Gender           *string   `json:"gender"`
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	profile := user.PublicProfile()
	return &profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.ProfilePhoto != nil {
		user.ProfilePhoto = input.ProfilePhoto
	}
	if input.Interests != nil {
		user.Interests = *input.Interests
	}
	if input.StylePreferences != nil {
		user.StylePreferences = *input.StylePreferences
	}
	if input.Gender != nil {
		user.Gender = input.Gender
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}

// Follow adds the relation; following is a set, so repeating it is a no-op.
func (s *UserService) Follow(ctx context.Context, userID, targetID uuid.UUID) error {
	if userID == targetID {
		return ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	return s.userRepo.Follow(ctx, userID, targetID)
}

func (s *UserService) Unfollow(ctx context.Context, userID, targetID uuid.UUID) error {
	return s.userRepo.Unfollow(ctx, userID, targetID)
}
