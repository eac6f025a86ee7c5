package sqlite

import (
	"context"
	"fmt"

	"github.com/dkovalev/bazaar/internal/models"
)

// SaveRequestLog records one handled HTTP request.
func (s *Storage) SaveRequestLog(ctx context.Context, entry *models.RequestLog) error {
	query := `
		INSERT INTO request_logs (id, method, path, duration_ms, user_id, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Method,
		entry.Path,
		entry.DurationMS,
		entry.UserID,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request log: %w", err)
	}

	return nil
}
