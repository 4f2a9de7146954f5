package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

var (
	ErrContactRequestNotFound = errors.New("contact_request_not_found")
	ErrNotContactCategory     = errors.New("not_contact_category")
	ErrNotRequestOwner        = errors.New("not_request_owner")
	ErrInvalidStatus          = errors.New("invalid_status")
)

type SendRequest struct {
	ClientID  snowflake.ID `json:"-"`
	ServiceID snowflake.ID `json:"service_id,string"`
	Message   string       `json:"message"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cr *ContactRequest) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ContactRequest, error)
	FindBetween(ctx context.Context, db *gorm.DB, clientID, supplierID, serviceID snowflake.ID) (*ContactRequest, error)
	ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, page pagination.Pagination) ([]*ContactRequest, error)
	ListBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID, page pagination.Pagination) ([]*ContactRequest, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
}

type Service interface {
	// Send validates the category is contact-only, rejects locked
	// suppliers, and persists the request plus the quota count as one
	// transactional unit.
	Send(ctx context.Context, req SendRequest) (*ContactRequest, error)

	// UpdateStatus lets the owning supplier accept or reject; accepted
	// and rejected outcomes notify best-effort and never re-count.
	UpdateStatus(ctx context.Context, requestID, supplierID snowflake.ID, status Status) (*ContactRequest, error)

	// StatusBetween reports the request status for a client/supplier/
	// service triple; empty string when none exists.
	StatusBetween(ctx context.Context, clientID, supplierID, serviceID snowflake.ID) (Status, error)

	ListByClient(ctx context.Context, clientID snowflake.ID) ([]*ContactRequest, error)
	ListBySupplier(ctx context.Context, supplierID snowflake.ID) ([]*ContactRequest, error)
}
