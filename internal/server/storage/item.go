package storage

import (
	"context"

	"github.com/dkovalev/bazaar/internal/models"
)

// ItemStorage defines the interface for item persistence.
type ItemStorage interface {
	// CreateItem inserts a new item.
	// Returns ErrItemAlreadyExists if the owner already has an item with
	// the same name.
	CreateItem(ctx context.Context, item *models.Item) error

	// GetItemByID retrieves an item by ID.
	// Returns ErrItemNotFound if no such item exists.
	GetItemByID(ctx context.Context, itemID string) (*models.Item, error)

	// ListItems returns items matching the filter, ordered by creation
	// time. Search applies to name and description.
	ListItems(ctx context.Context, filter ListFilter) ([]*models.Item, error)

	// ListItemsByOwner returns the owner's items matching the filter.
	ListItemsByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]*models.Item, error)

	// CountItems returns the total number of items.
	CountItems(ctx context.Context) (int, error)

	// CountItemsByOwner returns the number of items owned by a user.
	CountItemsByOwner(ctx context.Context, ownerID string) (int, error)

	// UpdateItem updates an item's mutable fields and sets updated_at.
	// Returns ErrItemNotFound if no such item exists.
	UpdateItem(ctx context.Context, item *models.Item) error

	// DeleteItem deletes an item by ID.
	// Returns ErrItemNotFound if no such item exists.
	DeleteItem(ctx context.Context, itemID string) error
}
