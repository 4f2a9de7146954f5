package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Location of a listed service.
type Location struct {
	City string  `json:"city"`
	Area string  `json:"area"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// EventItem is a supplier's service listing.
type EventItem struct {
	ID          snowflake.ID `json:"id,string" gorm:"primaryKey"`
	SupplierID  snowflake.ID `json:"supplier_id,string" gorm:"not null;index"`
	Name        string       `json:"name" gorm:"not null"`
	Slug        string       `json:"slug" gorm:"index"`
	Description string       `json:"description"`
	Category    string       `json:"category" gorm:"not null;index"`
	Subcategory string       `json:"subcategory"`
	Price       int64        `json:"price" gorm:"not null"`
	MinCapacity int          `json:"min_capacity"`
	MaxCapacity int          `json:"max_capacity"`

	Location datatypes.JSONType[Location]  `json:"location"`
	Images   datatypes.JSONSlice[string]   `json:"images"`
	Videos   datatypes.JSONSlice[string]   `json:"videos"`

	// Availability: either an explicit date list (legacy) or a range with
	// exclusions. The range wins when set.
	AvailableDates   datatypes.JSONSlice[time.Time] `json:"available_dates"`
	AvailabilityFrom *time.Time                     `json:"availability_from"`
	AvailabilityTo   *time.Time                     `json:"availability_to"`
	ExcludedDates    datatypes.JSONSlice[time.Time] `json:"excluded_dates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EventItem) TableName() string {
	return "event_items"
}

// IsDateAvailable reports whether the item can be booked on the given
// day. Without a configured range it falls back to the explicit date
// list; with one, the day must fall inside the range and not be excluded.
func (e *EventItem) IsDateAvailable(day time.Time) bool {
	if e.AvailabilityFrom == nil || e.AvailabilityTo == nil {
		for _, d := range e.AvailableDates {
			if sameDay(d, day) {
				return true
			}
		}
		return false
	}

	if day.Before(truncateDay(*e.AvailabilityFrom)) || day.After(endOfDay(*e.AvailabilityTo)) {
		return false
	}
	for _, excluded := range e.ExcludedDates {
		if sameDay(excluded, day) {
			return false
		}
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return truncateDay(t).Add(24*time.Hour - time.Nanosecond)
}
