package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	usagedomain "github.com/monasabatlabs/monasabat/internal/usage/domain"
	"github.com/monasabatlabs/monasabat/internal/usage/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Single connection keeps the in-memory database shared and serializes
	// sqlite writes under the concurrency tests.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&supplierdomain.Supplier{}))
	return db
}

func seedSupplier(t *testing.T, db *gorm.DB, id snowflake.ID) {
	t.Helper()
	require.NoError(t, db.Create(&supplierdomain.Supplier{
		ID:    id,
		Name:  "Test Supplier",
		Phone: "+96650000" + id.String(),
		Role:  supplierdomain.RoleSupplier,
	}).Error)
}

func TestIncrementAndGet(t *testing.T) {
	db := openTestDB(t)
	counter := repository.Provide()
	ctx := context.Background()

	seedSupplier(t, db, snowflake.ID(1001))

	for want := int64(1); want <= 5; want++ {
		got, err := counter.IncrementAndGet(ctx, db, snowflake.ID(1001))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	current, err := counter.Current(ctx, db, snowflake.ID(1001))
	require.NoError(t, err)
	assert.Equal(t, int64(5), current)
}

func TestIncrementAndGetNotFound(t *testing.T) {
	db := openTestDB(t)
	counter := repository.Provide()

	_, err := counter.IncrementAndGet(context.Background(), db, snowflake.ID(9999))
	assert.ErrorIs(t, err, usagedomain.ErrSupplierNotFound)

	_, err = counter.Current(context.Background(), db, snowflake.ID(9999))
	assert.ErrorIs(t, err, usagedomain.ErrSupplierNotFound)
}

// No increments may be lost or double-applied under any interleaving: the
// final count of N concurrent increments is exactly N.
func TestIncrementAndGetConcurrent(t *testing.T) {
	db := openTestDB(t)
	counter := repository.Provide()
	ctx := context.Background()

	seedSupplier(t, db, snowflake.ID(2002))

	const n = 100
	seen := make([]int64, 0, n)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := counter.IncrementAndGet(ctx, db, snowflake.ID(2002))
			assert.NoError(t, err)
			mu.Lock()
			seen = append(seen, got)
			mu.Unlock()
		}()
	}
	wg.Wait()

	final, err := counter.Current(ctx, db, snowflake.ID(2002))
	require.NoError(t, err)
	assert.Equal(t, int64(n), final)

	// Every post-increment value is distinct.
	unique := make(map[int64]struct{}, n)
	for _, v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, n)
}
