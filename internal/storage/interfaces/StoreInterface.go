package interfaces

import (
	"context"
	"hourbot/internal/models"
	"time"
)

// StoreInterface is the append-only record log every backend implements.
// Failures reaching the backend wrap storage.ErrStoreUnavailable.
type StoreInterface interface {
	Append(ctx context.Context, identity string, hours float64, at time.Time) error
	// AllEntries returns the identity's entries in insertion order, reset sentinels
	// included. No entries is an empty slice and a nil error.
	AllEntries(ctx context.Context, identity string) ([]models.Entry, error)
	Reset(ctx context.Context, identity string, at time.Time) error
	Name() string
	Close() error
}
