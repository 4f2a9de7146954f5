package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrSupplierNotFound = errors.New("supplier_not_found")

// Counter tracks a supplier's countable-activity consumption. The
// increment must be a single atomic read-modify-write against the store;
// a read-then-write pair would lose updates when two requests hit the
// same supplier concurrently.
type Counter interface {
	// IncrementAndGet bumps the supplier's usage count and returns the
	// post-increment value.
	IncrementAndGet(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) (int64, error)

	// Current reads the count without modifying it.
	Current(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) (int64, error)
}
