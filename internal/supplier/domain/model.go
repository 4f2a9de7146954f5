package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleClient   Role = "client"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

const LockReasonQuotaExceeded = "quota exceeded"

// Supplier is the marketplace account record. Clients and admins share the
// table; quota state is only meaningful for the supplier role.
type Supplier struct {
	ID       snowflake.ID `json:"id,string" gorm:"primaryKey"`
	Name     string       `json:"name" gorm:"not null"`
	Phone    string       `json:"phone" gorm:"uniqueIndex;not null"`
	Role     Role         `json:"role" gorm:"not null;default:'client'"`
	Language string       `json:"language" gorm:"not null;default:'ar'"`

	// Quota state. UsageCount only moves up through the atomic counter
	// and back to zero on unlock or subscription renewal.
	UsageCount  int64  `json:"usage_count" gorm:"not null;default:0"`
	IsLocked    bool   `json:"is_locked" gorm:"not null;default:false"`
	LockReason  string `json:"lock_reason,omitempty"`
	WarningSent bool   `json:"-" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// QuotaStatus is the dashboard view of a supplier's quota position.
type QuotaStatus struct {
	UsageCount int64   `json:"usage_count"`
	Limit      int     `json:"limit"`
	Remaining  int64   `json:"remaining"`
	Percent    float64 `json:"usage_percentage"`
	HasWarning bool    `json:"has_warning"`
	IsLocked   bool    `json:"is_locked"`
	LockReason string  `json:"lock_reason,omitempty"`
}
