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
	ErrEventItemNotFound = errors.New("event_item_not_found")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidName       = errors.New("invalid_name")
	ErrNotItemOwner      = errors.New("not_item_owner")
)

type CreateRequest struct {
	SupplierID  snowflake.ID `json:"supplier_id,string"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Subcategory string       `json:"subcategory"`
	Price       int64        `json:"price"`
	MinCapacity int          `json:"min_capacity"`
	MaxCapacity int          `json:"max_capacity"`
	Location    Location     `json:"location"`
	Images      []string     `json:"images"`
	Videos      []string     `json:"videos"`

	AvailableDates   []time.Time `json:"available_dates"`
	AvailabilityFrom *time.Time  `json:"availability_from"`
	AvailabilityTo   *time.Time  `json:"availability_to"`
	ExcludedDates    []time.Time `json:"excluded_dates"`
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Subcategory *string   `json:"subcategory"`
	Price       *int64    `json:"price"`
	MinCapacity *int      `json:"min_capacity"`
	MaxCapacity *int      `json:"max_capacity"`
	Location    *Location `json:"location"`
	Images      *[]string `json:"images"`
	Videos      *[]string `json:"videos"`

	AvailableDates   *[]time.Time `json:"available_dates"`
	AvailabilityFrom *time.Time   `json:"availability_from"`
	AvailabilityTo   *time.Time   `json:"availability_to"`
	ExcludedDates    *[]time.Time `json:"excluded_dates"`
}

// ListFilter mirrors the public search parameters. Zero values mean
// "no constraint"; People matches listings whose capacity range covers
// the requested head count.
type ListFilter struct {
	SupplierID  snowflake.ID
	Category    string
	Subcategory string
	City        string
	Area        string
	MinPrice    int64
	MaxPrice    int64
	People      int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *EventItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*EventItem, error)
	Update(ctx context.Context, db *gorm.DB, item *EventItem) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*EventItem, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	TopCategories(ctx context.Context, db *gorm.DB, limit int) ([]CategoryCount, error)
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*EventItem, error)
	Get(ctx context.Context, id snowflake.ID) (*EventItem, error)

	// Update and Delete are restricted to the listing's owner.
	Update(ctx context.Context, id, supplierID snowflake.ID, req UpdateRequest) (*EventItem, error)
	Delete(ctx context.Context, id, supplierID snowflake.ID) error

	List(ctx context.Context, filter ListFilter, page pagination.Pagination) ([]*EventItem, error)
}
