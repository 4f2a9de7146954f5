package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

var (
	ErrBookingNotFound     = errors.New("booking_not_found")
	ErrContactOnlyCategory = errors.New("contact_only_category")
	ErrDateUnavailable     = errors.New("date_unavailable")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrNotBookingOwner     = errors.New("not_booking_owner")
	ErrNotPending          = errors.New("booking_not_pending")
)

type CreateRequest struct {
	EventItemID    snowflake.ID `json:"event_item_id,string"`
	ClientID       snowflake.ID `json:"-"`
	EventDate      time.Time    `json:"event_date"`
	NumberOfPeople int          `json:"number_of_people"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, b *Booking) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Booking, error)
	ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, page pagination.Pagination) ([]*Booking, error)
	ListBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID, page pagination.Pagination) ([]*Booking, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Booking, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, status Status) (int64, error)
	ConfirmedRevenue(ctx context.Context, db *gorm.DB) (int64, error)
}

type Service interface {
	// Create rejects contact-only categories and locked suppliers, then
	// persists the booking and counts it against the supplier quota as a
	// single transactional unit.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	Get(ctx context.Context, id snowflake.ID) (*Booking, error)
	ListByClient(ctx context.Context, clientID snowflake.ID) ([]*Booking, error)
	ListBySupplier(ctx context.Context, supplierID snowflake.ID) ([]*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)

	// UpdateStatus lets the owning supplier confirm or cancel.
	UpdateStatus(ctx context.Context, bookingID, supplierID snowflake.ID, status Status) (*Booking, error)

	// CancelByClient cancels the client's own pending booking.
	CancelByClient(ctx context.Context, bookingID, clientID snowflake.ID) error
}
