package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// JoinRequest is a prospective supplier's application to be onboarded.
// It is submitted without an account; admins review it out of band.
type JoinRequest struct {
	ID          snowflake.ID `json:"id,string" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"not null"`
	Phone       string       `json:"phone" gorm:"not null;index"`
	ServiceType string       `json:"service_type"`
	City        string       `json:"city"`
	Notes       string       `json:"notes"`
	Status      Status       `json:"status" gorm:"not null;default:pending;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (JoinRequest) TableName() string {
	return "join_requests"
}
