package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ContactRequest is a client's direct approach to a supplier for a
// contact-only category. Like bookings, it counts against the supplier
// quota once, at creation.
type ContactRequest struct {
	ID         snowflake.ID `json:"id,string" gorm:"primaryKey"`
	ClientID   snowflake.ID `json:"client_id,string" gorm:"not null;index"`
	SupplierID snowflake.ID `json:"supplier_id,string" gorm:"not null;index"`
	ServiceID  snowflake.ID `json:"service_id,string" gorm:"not null;index"`
	Message    string       `json:"message"`
	Status     Status       `json:"status" gorm:"not null;default:'pending';index"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}
