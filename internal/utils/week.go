package utils

import (
	"fmt"
	"time"
)

// WeekID returns the ISO-8601 week identifier (e.g. "2026-W35") for the
// given instant. Every run of the snapshot job within the same ISO week
// produces the same id, which keeps the snapshot write overwrite-safe.
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
