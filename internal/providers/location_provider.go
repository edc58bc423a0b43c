package providers

import (
	"hourbot/internal/structures"
	"time"
)

// NewLocationProvider resolves the wall-clock zone used to stamp and bucket entries.
func NewLocationProvider(conf *structures.Config) (*time.Location, error) {
	name := conf.Tracker.Timezone
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
