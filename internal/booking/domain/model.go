package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is a client reservation with a deposit. It counts against the
// supplier's quota exactly once, at creation; later status transitions
// never re-trigger counting.
type Booking struct {
	ID             snowflake.ID `json:"id,string" gorm:"primaryKey"`
	EventItemID    snowflake.ID `json:"event_item_id,string" gorm:"not null;index"`
	SupplierID     snowflake.ID `json:"supplier_id,string" gorm:"not null;index"`
	ClientID       snowflake.ID `json:"client_id,string" gorm:"not null;index"`
	EventDate      time.Time    `json:"event_date" gorm:"not null"`
	NumberOfPeople int          `json:"number_of_people"`
	TotalPrice     int64        `json:"total_price" gorm:"not null"`
	PaidAmount     int64        `json:"paid_amount" gorm:"not null"`
	Status         Status       `json:"status" gorm:"not null;default:'pending';index"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
