package ports

import (
	"context"
	"time"

	"github.com/plantops/greenops/internal/domain"
)

// RecordRepository provides the raw telemetry dataset for an analysis
// window. Implementations: postgres store, CSV file loader.
type RecordRepository interface {
	Find(ctx context.Context, filter domain.RecordFilter) ([]domain.OperationalRecord, error)
	Save(ctx context.Context, records []domain.OperationalRecord) error
}

// Cache stores serialized computation results keyed by request shape.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
