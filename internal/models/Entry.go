package models

import (
	"strings"
	"time"
)

// TimestampLayout is the minute-precision wall-clock format entries are stored in.
const TimestampLayout = "2006-01-02 15:04"

// ResetMarker prefixes the stored timestamp of a reset sentinel.
const ResetMarker = "RESET"

var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Entry is one logged session. A zero Timestamp means the stored value could not be parsed.
type Entry struct {
	Identity  string    `json:"identity"`
	Hours     float64   `json:"hours"`
	Timestamp time.Time `json:"timestamp"`
	Reset     bool      `json:"reset,omitempty"`
}

func NewEntry(identity string, hours float64, at time.Time) Entry {
	return Entry{
		Identity:  identity,
		Hours:     hours,
		Timestamp: at.Truncate(time.Minute),
	}
}

func NewResetEntry(identity string, at time.Time) Entry {
	return Entry{
		Identity:  identity,
		Timestamp: at.Truncate(time.Minute),
		Reset:     true,
	}
}

func (e Entry) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}

// FormatTimestamp renders t the way every backend stores it.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatResetStamp renders the timestamp column of a reset sentinel row.
func FormatResetStamp(t time.Time) string {
	return ResetMarker + " - " + FormatTimestamp(t)
}

// IsResetStamp reports whether a stored timestamp marks a reset sentinel.
func IsResetStamp(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), ResetMarker)
}

// ParseTimestamp parses a stored timestamp in loc. Reset stamps are accepted
// with their marker stripped.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if IsResetStamp(s) {
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, ResetMarker), " -"))
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SinceReset returns the entries logged after the most recent reset sentinel.
// The sentinel itself is not included.
func SinceReset(entries []Entry) []Entry {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Reset {
			return entries[i+1:]
		}
	}
	return entries
}

// Recent returns up to n of the last non-reset entries, oldest first.
func Recent(entries []Entry, n int) []Entry {
	if n <= 0 {
		return nil
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		if entries[i].Reset {
			continue
		}
		out = append(out, entries[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
