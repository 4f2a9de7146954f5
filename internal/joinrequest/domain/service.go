package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

var (
	ErrJoinRequestNotFound = errors.New("join_request_not_found")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrMissingName         = errors.New("missing_name")
	ErrMissingPhone        = errors.New("missing_phone")
)

type SubmitRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	ServiceType string `json:"service_type"`
	City        string `json:"city"`
	Notes       string `json:"notes"`
}

type ListFilter struct {
	Status Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, jr *JoinRequest) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*JoinRequest, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*JoinRequest, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
}

type Service interface {
	// Submit is the public entry point; no authentication required.
	Submit(ctx context.Context, req SubmitRequest) (*JoinRequest, error)

	List(ctx context.Context, filter ListFilter, page pagination.Pagination) ([]*JoinRequest, error)

	// UpdateStatus is the admin review action: reviewed, approved or
	// rejected. Requests never move back to pending.
	UpdateStatus(ctx context.Context, id snowflake.ID, status Status) (*JoinRequest, error)
}
