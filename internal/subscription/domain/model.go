package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Subscription is a time-boxed entitlement overriding the free quota.
// At most one row per supplier may hold StatusActive at any time.
type Subscription struct {
	ID         snowflake.ID `json:"id,string" gorm:"primaryKey"`
	SupplierID snowflake.ID `json:"supplier_id,string" gorm:"not null;index"`
	Plan       string       `json:"plan" gorm:"not null"`
	Status     Status       `json:"status" gorm:"not null;default:'active';index"`
	StartDate  time.Time    `json:"start_date" gorm:"not null"`
	EndDate    time.Time    `json:"end_date" gorm:"not null"`
	Amount     int64        `json:"amount"`
	PaymentRef string       `json:"payment_ref,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// ActiveAt reports whether the subscription entitles the supplier at the
// given instant. A row still marked active past its end date does not:
// expiry is decided on read, not left to a background job.
func (s *Subscription) ActiveAt(at time.Time) bool {
	return s.Status == StatusActive && at.Before(s.EndDate)
}
