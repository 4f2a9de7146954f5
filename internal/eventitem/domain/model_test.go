package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsDateAvailableExplicitList(t *testing.T) {
	item := &EventItem{
		AvailableDates: []time.Time{day(2025, 7, 10), day(2025, 7, 12)},
	}

	assert.True(t, item.IsDateAvailable(day(2025, 7, 10)))
	// Matching is by calendar day, not instant.
	assert.True(t, item.IsDateAvailable(day(2025, 7, 12).Add(18*time.Hour)))
	assert.False(t, item.IsDateAvailable(day(2025, 7, 11)))

	empty := &EventItem{}
	assert.False(t, empty.IsDateAvailable(day(2025, 7, 10)))
}

func TestIsDateAvailableRange(t *testing.T) {
	from := day(2025, 7, 1)
	to := day(2025, 7, 31)
	item := &EventItem{
		AvailabilityFrom: &from,
		AvailabilityTo:   &to,
		ExcludedDates:    []time.Time{day(2025, 7, 15)},
	}

	assert.True(t, item.IsDateAvailable(day(2025, 7, 1)))
	// The end day itself is bookable up to its last instant.
	assert.True(t, item.IsDateAvailable(day(2025, 7, 31).Add(23*time.Hour)))
	assert.False(t, item.IsDateAvailable(day(2025, 6, 30)))
	assert.False(t, item.IsDateAvailable(day(2025, 8, 1)))
	assert.False(t, item.IsDateAvailable(day(2025, 7, 15)))
}

func TestIsDateAvailableRangeIgnoresExplicitList(t *testing.T) {
	from := day(2025, 7, 1)
	to := day(2025, 7, 5)
	item := &EventItem{
		AvailableDates:   []time.Time{day(2025, 9, 1)},
		AvailabilityFrom: &from,
		AvailabilityTo:   &to,
	}

	// The range wins when both are set.
	assert.False(t, item.IsDateAvailable(day(2025, 9, 1)))
	assert.True(t, item.IsDateAvailable(day(2025, 7, 3)))
}
