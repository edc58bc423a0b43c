package storage

import (
	"context"
	"hourbot/internal/models"
	"time"
)

// UnavailableStore stands in for a backend that failed to connect at startup.
// Every call fails with the connect error wrapped in ErrStoreUnavailable.
type UnavailableStore struct {
	name string
	err  error
}

func NewUnavailableStore(name string, err error) *UnavailableStore {
	return &UnavailableStore{name: name, err: err}
}

func (u *UnavailableStore) Name() string {
	return u.name
}

func (u *UnavailableStore) Append(context.Context, string, float64, time.Time) error {
	return unavailable("append", u.err)
}

func (u *UnavailableStore) Reset(context.Context, string, time.Time) error {
	return unavailable("reset", u.err)
}

func (u *UnavailableStore) AllEntries(context.Context, string) ([]models.Entry, error) {
	return nil, unavailable("read entries", u.err)
}

func (u *UnavailableStore) Close() error {
	return nil
}
