package handlers

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkovalev/bazaar/internal/crypto"
	"github.com/dkovalev/bazaar/internal/models"
	"github.com/dkovalev/bazaar/internal/server/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser(t *testing.T, id, name, email, password string) *models.User {
	t.Helper()

	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	return &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Age:          30,
		IsActive:     true,
	}
}

func applyFilter[T any](entries []T, filter storage.ListFilter, matches func(T, string) bool) []T {
	out := make([]T, 0, len(entries))
	search := strings.ToLower(filter.Search)
	for _, e := range entries {
		if search != "" && !matches(e, search) {
			continue
		}
		out = append(out, e)
	}
	if filter.Skip >= len(out) {
		return nil
	}
	out = out[filter.Skip:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

// mockUserStorage is an in-memory UserStorage. Setting err makes every
// method fail with it.
type mockUserStorage struct {
	users []*models.User
	err   error
}

func (m *mockUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	m.users = append(m.users, user)
	return nil
}

func (m *mockUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) ListUsers(_ context.Context, filter storage.ListFilter) ([]*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return applyFilter(m.users, filter, func(u *models.User, search string) bool {
		return strings.Contains(strings.ToLower(u.Name), search) ||
			strings.Contains(strings.ToLower(u.Email), search)
	}), nil
}

func (m *mockUserStorage) CountUsers(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.users), nil
}

func (m *mockUserStorage) UpdateUser(_ context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	for i, u := range m.users {
		if u.ID == user.ID {
			m.users[i] = user
			return nil
		}
	}
	return storage.ErrUserNotFound
}

// mockItemStorage is an in-memory ItemStorage.
type mockItemStorage struct {
	items []*models.Item
	err   error
}

func (m *mockItemStorage) CreateItem(_ context.Context, item *models.Item) error {
	if m.err != nil {
		return m.err
	}
	for _, it := range m.items {
		if it.OwnerID == item.OwnerID && it.Name == item.Name {
			return storage.ErrItemAlreadyExists
		}
	}
	m.items = append(m.items, item)
	return nil
}

func (m *mockItemStorage) GetItemByID(_ context.Context, itemID string) (*models.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, it := range m.items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return nil, storage.ErrItemNotFound
}

func (m *mockItemStorage) ListItems(_ context.Context, filter storage.ListFilter) ([]*models.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	return applyFilter(m.items, filter, itemMatches), nil
}

func (m *mockItemStorage) ListItemsByOwner(_ context.Context, ownerID string, filter storage.ListFilter) ([]*models.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	owned := make([]*models.Item, 0, len(m.items))
	for _, it := range m.items {
		if it.OwnerID == ownerID {
			owned = append(owned, it)
		}
	}
	return applyFilter(owned, filter, itemMatches), nil
}

func (m *mockItemStorage) CountItems(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.items), nil
}

func (m *mockItemStorage) CountItemsByOwner(_ context.Context, ownerID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, it := range m.items {
		if it.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (m *mockItemStorage) UpdateItem(_ context.Context, item *models.Item) error {
	if m.err != nil {
		return m.err
	}
	for i, it := range m.items {
		if it.ID == item.ID {
			m.items[i] = item
			return nil
		}
	}
	return storage.ErrItemNotFound
}

func (m *mockItemStorage) DeleteItem(_ context.Context, itemID string) error {
	if m.err != nil {
		return m.err
	}
	for i, it := range m.items {
		if it.ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return storage.ErrItemNotFound
}

func itemMatches(it *models.Item, search string) bool {
	if strings.Contains(strings.ToLower(it.Name), search) {
		return true
	}
	return it.Description != nil && strings.Contains(strings.ToLower(*it.Description), search)
}
