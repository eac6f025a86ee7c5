// Package auth resolves request credentials to account records. It is the
// only place that combines the password hasher, the token claims and the
// user store.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkovalev/bazaar/internal/crypto"
	"github.com/dkovalev/bazaar/internal/models"
	"github.com/dkovalev/bazaar/internal/server/storage"
	"github.com/dkovalev/bazaar/internal/server/token"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// Callers must not be able to tell the two apart, or the login endpoint
// becomes an account enumeration oracle.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownPrincipal indicates that token claims reference no existing
// account, e.g. a token issued before the account was removed.
var ErrUnknownPrincipal = errors.New("unknown principal")

// Service resolves credentials and token claims to users.
type Service struct {
	users storage.UserStorage
}

// NewService creates a resolver backed by the given user store.
func NewService(users storage.UserStorage) *Service {
	return &Service{users: users}
}

// Authenticate verifies an email/password pair and returns the matching
// user. Any failure yields ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ResolveSubject maps verified token claims to the account they name.
// Returns ErrUnknownPrincipal when the subject is empty or no longer
// matches an account.
func (s *Service) ResolveSubject(ctx context.Context, claims *token.Claims) (*models.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, ErrUnknownPrincipal
	}

	user, err := s.users.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUnknownPrincipal
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user, nil
}
