package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/repository/memory"
)

func newPostFixture(t *testing.T) (*PostService, *memory.UserStore, *domain.User) {
	t.Helper()
	users := memory.NewUserStore()
	posts := memory.NewPostStore()
	author := seedUser(t, users, "author")
	return NewPostService(posts, users), users, author
}

func TestCreatePost(t *testing.T) {
	svc, _, author := newPostFixture(t)
	principal := auth.Principal{UserID: author.ID, Role: author.Role}

	post, err := svc.Create(context.Background(), principal, CreatePostInput{Content: "New drop today"})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.UserID)
	assert.Equal(t, "New drop today", post.Content)
	assert.NotNil(t, post.Media)
	assert.NotNil(t, post.TaggedProducts)
}

func TestCreatePostBannedUser(t *testing.T) {
	svc, _, author := newPostFixture(t)
	principal := auth.Principal{UserID: author.ID, Role: author.Role, Banned: true}

	_, err := svc.Create(context.Background(), principal, CreatePostInput{Content: "hello"})
	assert.ErrorIs(t, err, auth.ErrBanned)
}

func TestCreatePostTaggedProductsRequireVerification(t *testing.T) {
	svc, users, author := newPostFixture(t)
	principal := auth.Principal{UserID: author.ID, Role: author.Role}

	input := CreatePostInput{
		Content:        "Shop my look",
		TaggedProducts: []uuid.UUID{uuid.New()},
	}

	_, err := svc.Create(context.Background(), principal, input)
	assert.ErrorIs(t, err, ErrNotVerified)

	author.IsVerified = true
	require.NoError(t, users.Update(context.Background(), author))

	post, err := svc.Create(context.Background(), principal, input)
	require.NoError(t, err)
	assert.Len(t, post.TaggedProducts, 1)
}

func TestToggleLike(t *testing.T) {
	svc, users, author := newPostFixture(t)
	principal := auth.Principal{UserID: author.ID, Role: author.Role}

	post, err := svc.Create(context.Background(), principal, CreatePostInput{Content: "like me"})
	require.NoError(t, err)

	fan := seedUser(t, users, "fan")
	fanPrincipal := auth.Principal{UserID: fan.ID, Role: fan.Role}

	liked, err := svc.ToggleLike(context.Background(), fanPrincipal, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(context.Background(), fanPrincipal, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = svc.ToggleLike(context.Background(), fanPrincipal, uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentSnapshotsUserName(t *testing.T) {
	svc, users, author := newPostFixture(t)
	principal := auth.Principal{UserID: author.ID, Role: author.Role}

	post, err := svc.Create(context.Background(), principal, CreatePostInput{Content: "thoughts?"})
	require.NoError(t, err)

	fan := seedUser(t, users, "fan")
	fanPrincipal := auth.Principal{UserID: fan.ID, Role: fan.Role}

	comment, err := svc.Comment(context.Background(), fanPrincipal, post.ID, "love it")
	require.NoError(t, err)
	assert.Equal(t, "fan", comment.UserName)
	assert.Equal(t, post.ID, comment.PostID)

	_, err = svc.Comment(context.Background(), fanPrincipal, uuid.New(), "ghost")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFeedCapsLimit(t *testing.T) {
	svc, _, author := newPostFixture(t)
	principal := auth.Principal{UserID: author.ID, Role: author.Role}

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), principal, CreatePostInput{Content: "post"})
		require.NoError(t, err)
	}

	feed, err := svc.Feed(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, feed, 2)

	// Absurd limits fall back to the page cap instead of erroring.
	feed, err = svc.Feed(context.Background(), 10000, 0)
	require.NoError(t, err)
	assert.Len(t, feed, 3)

	feed, err = svc.Feed(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}
