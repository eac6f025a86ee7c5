package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalev/bazaar/internal/models"
	"github.com/dkovalev/bazaar/internal/server/storage"
)

func TestUserCRUD(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	created := seedUser(t, s, "user-1", "Alice", "alice@example.com")

	byEmail, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, created.PasswordHash, byEmail.PasswordHash)
	assert.True(t, byEmail.IsActive)
	assert.Nil(t, byEmail.UpdatedAt)

	byID, err := s.GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestGetUser_NotFound(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	_, err := s.GetUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "Alice", "alice@example.com")

	dup := &models.User{
		ID:           "user-2",
		Name:         "Other Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Age:          25,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	err := s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestListUsers(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, spec := range []struct{ id, name, email string }{
		{"user-1", "Alice", "alice@example.com"},
		{"user-2", "Bob", "bob@example.com"},
		{"user-3", "Carol", "carol@other.org"},
	} {
		user := &models.User{
			ID:           spec.id,
			Name:         spec.name,
			Email:        spec.email,
			PasswordHash: "hash",
			Age:          30,
			IsActive:     true,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.CreateUser(ctx, user))
	}

	t.Run("ordered by creation time", func(t *testing.T) {
		users, err := s.ListUsers(ctx, storage.ListFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "user-1", users[0].ID)
		assert.Equal(t, "user-3", users[2].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		users, err := s.ListUsers(ctx, storage.ListFilter{Skip: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "user-2", users[0].ID)
	})

	t.Run("search by name case-insensitive", func(t *testing.T) {
		users, err := s.ListUsers(ctx, storage.ListFilter{Search: "ALI", Limit: 10})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Alice", users[0].Name)
	})

	t.Run("search by email", func(t *testing.T) {
		users, err := s.ListUsers(ctx, storage.ListFilter{Search: "other.org", Limit: 10})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Carol", users[0].Name)
	})

	t.Run("no match", func(t *testing.T) {
		users, err := s.ListUsers(ctx, storage.ListFilter{Search: "nobody", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestCountUsers(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	seedUser(t, s, "user-1", "Alice", "alice@example.com")
	seedUser(t, s, "user-2", "Bob", "bob@example.com")

	count, err = s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpdateUser(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := seedUser(t, s, "user-1", "Alice", "alice@example.com")

	now := time.Now().UTC()
	user.IsActive = false
	user.UpdatedAt = &now
	require.NoError(t, s.UpdateUser(ctx, user))

	got, err := s.GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.UpdatedAt)
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := setupTestStorage(t)

	err := s.UpdateUser(context.Background(), &models.User{ID: "ghost", Name: "Ghost"})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
