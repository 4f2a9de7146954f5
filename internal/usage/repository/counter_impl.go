package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	usagedomain "github.com/monasabatlabs/monasabat/internal/usage/domain"
)

type counter struct{}

func Provide() usagedomain.Counter {
	return &counter{}
}

// IncrementAndGet is one conditional UPDATE ... RETURNING statement, so
// the read-modify-write is atomic at the row level on both postgres and
// sqlite. Concurrent callers each observe a distinct post-increment value.
func (c *counter) IncrementAndGet(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) (int64, error) {
	var count int64
	res := db.WithContext(ctx).Raw(
		`UPDATE suppliers
		 SET usage_count = usage_count + 1, updated_at = ?
		 WHERE id = ?
		 RETURNING usage_count`,
		time.Now().UTC(), supplierID,
	).Scan(&count)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, usagedomain.ErrSupplierNotFound
	}
	return count, nil
}

func (c *counter) Current(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) (int64, error) {
	var row struct {
		ID         snowflake.ID
		UsageCount int64
	}
	res := db.WithContext(ctx).Raw(
		`SELECT id, usage_count FROM suppliers WHERE id = ?`, supplierID,
	).Scan(&row)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 || row.ID == 0 {
		return 0, usagedomain.ErrSupplierNotFound
	}
	return row.UsageCount, nil
}
