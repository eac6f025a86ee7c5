package storage

import (
	"context"

	"github.com/dkovalev/bazaar/internal/models"
)

// RequestLogStorage records handled HTTP requests. Writes are best effort:
// the logging middleware must not fail a request over a lost log row.
type RequestLogStorage interface {
	SaveRequestLog(ctx context.Context, entry *models.RequestLog) error
}
