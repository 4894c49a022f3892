package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed set; unknown values are rejected at the boundary.
type Role string

const (
	RoleUser       Role = "user"
	RoleInfluencer Role = "influencer"
	RoleAdmin      Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleInfluencer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	PasswordHash     string    `json:"-"`
	Gender           *string   `json:"gender,omitempty"`
	Bio              *string   `json:"bio,omitempty"`
	ProfilePhoto     *string   `json:"profile_photo,omitempty"`
	Interests        []string  `json:"interests"`
	StylePreferences []string  `json:"style_preferences"`
	Role             Role      `json:"role"`
	IsVerified       bool      `json:"is_verified"`
	IsBanned         bool      `json:"is_banned"`
	FollowersCount   int       `json:"followers_count"`
	FollowingCount   int       `json:"following_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Profile is the public view of a user, safe to return to anyone.
type Profile struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Bio            *string   `json:"bio,omitempty"`
	ProfilePhoto   *string   `json:"profile_photo,omitempty"`
	Role           Role      `json:"role"`
	IsVerified     bool      `json:"is_verified"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
}

func (u *User) PublicProfile() Profile {
	return Profile{
		ID:             u.ID,
		Name:           u.Name,
		Bio:            u.Bio,
		ProfilePhoto:   u.ProfilePhoto,
		Role:           u.Role,
		IsVerified:     u.IsVerified,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}
