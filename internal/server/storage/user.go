package storage

import (
	"context"

	"github.com/dkovalev/bazaar/internal/models"
)

// ListFilter narrows list queries. Search is a case-insensitive substring
// match; which columns it applies to is up to the implementation.
type ListFilter struct {
	Search string
	Skip   int
	Limit  int
}

// UserStorage defines the interface for user persistence.
type UserStorage interface {
	// CreateUser inserts a new user.
	// Returns ErrUserAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email (exact match).
	// Returns ErrUserNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListUsers returns users matching the filter, ordered by creation
	// time. Search applies to name and email.
	ListUsers(ctx context.Context, filter ListFilter) ([]*models.User, error)

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int, error)

	// UpdateUser updates a user's mutable fields and sets updated_at.
	// Returns ErrUserNotFound if no such user exists.
	UpdateUser(ctx context.Context, user *models.User) error
}
