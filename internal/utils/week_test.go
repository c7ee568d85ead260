package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekID(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	assert.NoError(t, err)

	t.Run("Stable within a week", func(t *testing.T) {
		monday := time.Date(2026, 8, 24, 0, 0, 5, 0, tokyo)
		friday := time.Date(2026, 8, 28, 18, 30, 0, 0, tokyo)
		assert.Equal(t, WeekID(monday), WeekID(friday))
	})

	t.Run("Changes across week boundary", func(t *testing.T) {
		sunday := time.Date(2026, 8, 23, 23, 59, 0, 0, tokyo)
		monday := time.Date(2026, 8, 24, 0, 0, 5, 0, tokyo)
		assert.NotEqual(t, WeekID(sunday), WeekID(monday))
	})

	t.Run("ISO year at January boundary", func(t *testing.T) {
		// Jan 1 2027 falls in ISO week 53 of 2026.
		jan1 := time.Date(2027, 1, 1, 0, 0, 0, 0, tokyo)
		assert.Equal(t, "2026-W53", WeekID(jan1))
	})

	t.Run("Format", func(t *testing.T) {
		assert.Equal(t, "2026-W35", WeekID(time.Date(2026, 8, 25, 12, 0, 0, 0, tokyo)))
	})
}
