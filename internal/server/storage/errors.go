package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with this email already exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrItemNotFound indicates that no item matched the lookup.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates the owner already has an item with
	// this name.
	ErrItemAlreadyExists = errors.New("item already exists")
)
