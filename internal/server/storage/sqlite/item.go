package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dkovalev/bazaar/internal/models"
	"github.com/dkovalev/bazaar/internal/server/storage"
)

// CreateItem inserts a new item. The (owner_id, name) pair must be unique.
func (s *Storage) CreateItem(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, name, description, price, tax, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.Tax,
		item.OwnerID,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrItemAlreadyExists
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// GetItemByID retrieves an item by ID.
func (s *Storage) GetItemByID(ctx context.Context, itemID string) (*models.Item, error) {
	query := `
		SELECT id, name, description, price, tax, owner_id, created_at, updated_at
		FROM items
		WHERE id = ?
	`

	item, err := scanItemRow(s.db.QueryRowContext(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListItems returns items matching the filter ordered by creation time.
// Search matches name or description as a case-insensitive substring.
func (s *Storage) ListItems(ctx context.Context, filter storage.ListFilter) ([]*models.Item, error) {
	return s.listItems(ctx, "", filter)
}

// ListItemsByOwner returns the owner's items matching the filter.
func (s *Storage) ListItemsByOwner(ctx context.Context, ownerID string, filter storage.ListFilter) ([]*models.Item, error) {
	return s.listItems(ctx, ownerID, filter)
}

func (s *Storage) listItems(ctx context.Context, ownerID string, filter storage.ListFilter) ([]*models.Item, error) {
	query := `
		SELECT id, name, description, price, tax, owner_id, created_at, updated_at
		FROM items
	`
	var conds []string
	var args []any

	if ownerID != "" {
		conds = append(conds, `owner_id = ?`)
		args = append(args, ownerID)
	}
	if filter.Search != "" {
		conds = append(conds, `(LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)`)
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}

	query += ` ORDER BY created_at, id LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Skip)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// CountItems returns the total number of items.
func (s *Storage) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// CountItemsByOwner returns the number of items owned by a user.
func (s *Storage) CountItemsByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// UpdateItem updates the item's mutable fields.
func (s *Storage) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = ?, description = ?, price = ?, tax = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		item.Tax,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrItemAlreadyExists
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrItemNotFound
	}

	return nil
}

// DeleteItem deletes an item by ID.
func (s *Storage) DeleteItem(ctx context.Context, itemID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrItemNotFound
	}

	return nil
}

func scanItemRow(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var description sql.NullString
	var tax sql.NullFloat64
	var updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.Name,
		&description,
		&item.Price,
		&tax,
		&item.OwnerID,
		&item.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	if description.Valid {
		item.Description = &description.String
	}
	if tax.Valid {
		item.Tax = &tax.Float64
	}
	if updatedAt.Valid {
		item.UpdatedAt = &updatedAt.Time
	}

	return item, nil
}
