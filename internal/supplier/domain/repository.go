package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type ListFilter struct {
	Role   Role
	Locked *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, s *Supplier) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Supplier, error)
	FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*Supplier, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Supplier, error)
	CountByRole(ctx context.Context, db *gorm.DB, role Role) (int64, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)

	// Lock applies the locked state only if the supplier is not already
	// locked; it reports whether this call performed the transition, so
	// concurrent threshold crossings lock (and notify) exactly once.
	Lock(ctx context.Context, db *gorm.DB, id snowflake.ID, reason string) (bool, error)

	// MarkWarned sets the warning-sent flag only if unset, reporting
	// whether this call won; dedupes warnings inside one threshold window.
	MarkWarned(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)

	// ResetQuota clears the whole quota state: count to zero, unlocked,
	// lock reason and warning flag cleared. Idempotent.
	ResetQuota(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
