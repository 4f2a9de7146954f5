package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription_not_found")
	ErrSupplierNotFound     = errors.New("supplier_not_found")
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, s *Subscription) error
	FindActiveBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) (*Subscription, error)
	ListBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) ([]Subscription, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error

	// ExpireActiveBySupplier marks every active row for the supplier as
	// expired, returning how many rows changed.
	ExpireActiveBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) (int64, error)

	// ExpireAllActiveBefore sweeps rows whose end date passed the cutoff.
	ExpireAllActiveBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

type Service interface {
	// CreateOrRenew activates a new subscription, expiring any prior
	// active one, and fully resets the supplier's quota state.
	CreateOrRenew(ctx context.Context, supplierID snowflake.ID, plan string) (*Subscription, error)

	// Active returns the currently effective subscription, or nil when
	// the supplier is on the free tier. Stale active rows are treated
	// (and lazily marked) as expired.
	Active(ctx context.Context, supplierID snowflake.ID) (*Subscription, error)

	// ActivePlan resolves the plan name backing the supplier's current
	// quota limit; empty string means free tier.
	ActivePlan(ctx context.Context, supplierID snowflake.ID) (string, error)

	// Cancel marks the active subscription cancelled. It neither re-locks
	// the supplier nor resets usage; lock state is driven only by the
	// usage count and admin/renewal actions.
	Cancel(ctx context.Context, supplierID snowflake.ID) error
}
