package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	quotadomain "github.com/monasabatlabs/monasabat/internal/quota/domain"
)

var (
	ErrSupplierNotFound   = errors.New("supplier_not_found")
	ErrSupplierLocked     = errors.New("supplier_locked")
	ErrNotSupplier        = errors.New("not_a_supplier")
	ErrStorageUnavailable = errors.New("storage_unavailable")
)

// ActivityResult reports what a counted activity did to the supplier's
// quota state.
type ActivityResult struct {
	Counted   bool
	NewCount  int64
	Limit     int
	Remaining int64
	Warned    bool
	Locked    bool
}

// Service is the supplier lifecycle manager: it orchestrates the quota
// policy and the atomic usage counter around the supplier record, and
// emits best-effort notifications on threshold crossings.
type Service interface {
	// RegisterFromPhone returns the account for a phone number, creating
	// a client record on first authentication.
	RegisterFromPhone(ctx context.Context, phone string) (*Supplier, error)

	Get(ctx context.Context, id snowflake.ID) (*Supplier, error)
	List(ctx context.Context, filter ListFilter) ([]*Supplier, error)

	// EnsureUnlocked fails with ErrSupplierLocked when the supplier is
	// suspended; countable activity must be rejected before any write.
	EnsureUnlocked(ctx context.Context, tx *gorm.DB, id snowflake.ID) error

	// RecordCountedActivity classifies the event, atomically increments
	// the usage counter when countable, and applies any resulting warning
	// or lock transition. It must run inside the same transaction as the
	// activity-event insert so a counter failure aborts the whole creation.
	RecordCountedActivity(ctx context.Context, tx *gorm.DB, id snowflake.ID, flow quotadomain.Flow, category, subcategory string) (ActivityResult, error)

	// Unlock is the admin override: full quota reset, idempotent.
	Unlock(ctx context.Context, id snowflake.ID) error

	QuotaStatus(ctx context.Context, id snowflake.ID) (QuotaStatus, error)
}
