package storage

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable reports that the backend could not be reached, read or written.
var ErrStoreUnavailable = errors.New("store unavailable")

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
