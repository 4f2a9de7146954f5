package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	eventitemrepository "github.com/monasabatlabs/monasabat/internal/eventitem/repository"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	supplierrepository "github.com/monasabatlabs/monasabat/internal/supplier/repository"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type itemFixture struct {
	db    *gorm.DB
	svc   eventitemdomain.Service
	genID *snowflake.Node
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&supplierdomain.Supplier{}, &eventitemdomain.EventItem{}))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	svc := NewService(ServiceParam{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      eventitemrepository.Provide(),
		Suppliers: supplierrepository.Provide(),
	})

	return &itemFixture{db: db, svc: svc, genID: node}
}

func (f *itemFixture) seedAccount(t *testing.T, role supplierdomain.Role) snowflake.ID {
	t.Helper()
	id := f.genID.Generate()
	require.NoError(t, f.db.Create(&supplierdomain.Supplier{
		ID:    id,
		Name:  "Account",
		Phone: "+9665" + id.String(),
		Role:  role,
	}).Error)
	return id
}

func TestCreateEventItem(t *testing.T) {
	f := newItemFixture(t)
	supplierID := f.seedAccount(t, supplierdomain.RoleSupplier)

	item, err := f.svc.Create(context.Background(), eventitemdomain.CreateRequest{
		SupplierID: supplierID,
		Name:       "Royal Wedding Hall",
		Category:   "  Hall ",
		Price:      5000,
		Location:   eventitemdomain.Location{City: "Riyadh"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hall", item.Category)
	assert.Equal(t, "royal-wedding-hall", item.Slug)
	assert.Equal(t, "Riyadh", item.Location.Data().City)
}

func TestCreateEventItemValidation(t *testing.T) {
	f := newItemFixture(t)
	supplierID := f.seedAccount(t, supplierdomain.RoleSupplier)
	clientID := f.seedAccount(t, supplierdomain.RoleClient)

	_, err := f.svc.Create(context.Background(), eventitemdomain.CreateRequest{
		SupplierID: supplierID, Name: "  ", Price: 100,
	})
	assert.ErrorIs(t, err, eventitemdomain.ErrInvalidName)

	_, err = f.svc.Create(context.Background(), eventitemdomain.CreateRequest{
		SupplierID: supplierID, Name: "Hall", Price: -1,
	})
	assert.ErrorIs(t, err, eventitemdomain.ErrInvalidPrice)

	// Only supplier accounts may list services.
	_, err = f.svc.Create(context.Background(), eventitemdomain.CreateRequest{
		SupplierID: clientID, Name: "Hall", Price: 100,
	})
	assert.ErrorIs(t, err, supplierdomain.ErrNotSupplier)

	_, err = f.svc.Create(context.Background(), eventitemdomain.CreateRequest{
		SupplierID: snowflake.ID(424242), Name: "Hall", Price: 100,
	})
	assert.ErrorIs(t, err, supplierdomain.ErrSupplierNotFound)
}

func TestListFiltersByCategoryAndCity(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	supplierID := f.seedAccount(t, supplierdomain.RoleSupplier)

	mk := func(name, category, city string) {
		_, err := f.svc.Create(ctx, eventitemdomain.CreateRequest{
			SupplierID: supplierID,
			Name:       name,
			Category:   category,
			Price:      100,
			Location:   eventitemdomain.Location{City: city},
		})
		require.NoError(t, err)
	}
	mk("Hall A", "hall", "Riyadh")
	mk("Hall B", "hall", "Jeddah")
	mk("Farm A", "farm", "Riyadh")

	items, err := f.svc.List(ctx, eventitemdomain.ListFilter{Category: "hall"}, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = f.svc.List(ctx, eventitemdomain.ListFilter{SupplierID: supplierID}, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

// Categories are normalized at write time; filters must match however
// the caller cases them.
func TestListCategoryFilterIsCaseInsensitive(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	supplierID := f.seedAccount(t, supplierdomain.RoleSupplier)

	_, err := f.svc.Create(ctx, eventitemdomain.CreateRequest{
		SupplierID: supplierID,
		Name:       "Grand Hall",
		Category:   "Hall",
		Price:      100,
	})
	require.NoError(t, err)

	items, err := f.svc.List(ctx, eventitemdomain.ListFilter{Category: " Hall "}, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListFiltersByPriceAndCapacity(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	supplierID := f.seedAccount(t, supplierdomain.RoleSupplier)

	mk := func(name string, price int64, minCap, maxCap int) {
		_, err := f.svc.Create(ctx, eventitemdomain.CreateRequest{
			SupplierID:  supplierID,
			Name:        name,
			Category:    "hall",
			Price:       price,
			MinCapacity: minCap,
			MaxCapacity: maxCap,
		})
		require.NoError(t, err)
	}
	mk("Small Hall", 1000, 20, 80)
	mk("Mid Hall", 3000, 50, 200)
	mk("Grand Hall", 9000, 150, 600)

	items, err := f.svc.List(ctx, eventitemdomain.ListFilter{MinPrice: 2000, MaxPrice: 5000}, pagination.Pagination{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mid Hall", items[0].Name)

	// 150 guests fit the mid and grand halls, not the small one.
	items, err = f.svc.List(ctx, eventitemdomain.ListFilter{People: 150}, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCreateEventItemStoresMedia(t *testing.T) {
	f := newItemFixture(t)
	supplierID := f.seedAccount(t, supplierdomain.RoleSupplier)

	item, err := f.svc.Create(context.Background(), eventitemdomain.CreateRequest{
		SupplierID: supplierID,
		Name:       "Salon One",
		Category:   "salon",
		Price:      500,
		Images:     []string{"https://cdn.example/salon.jpg"},
		Videos:     []string{"https://cdn.example/tour.mp4"},
	})
	require.NoError(t, err)

	var stored eventitemdomain.EventItem
	require.NoError(t, f.db.First(&stored, "id = ?", item.ID).Error)
	require.Len(t, stored.Videos, 1)
	assert.Equal(t, "https://cdn.example/tour.mp4", stored.Videos[0])
	require.Len(t, stored.Images, 1)
}

func TestUpdateEventItem(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	supplierID := f.seedAccount(t, supplierdomain.RoleSupplier)

	item, err := f.svc.Create(ctx, eventitemdomain.CreateRequest{
		SupplierID: supplierID,
		Name:       "Old Hall",
		Category:   "hall",
		Price:      1000,
	})
	require.NoError(t, err)

	name := "New Grand Hall"
	price := int64(2500)
	category := " Salon "
	updated, err := f.svc.Update(ctx, item.ID, supplierID, eventitemdomain.UpdateRequest{
		Name:     &name,
		Price:    &price,
		Category: &category,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Grand Hall", updated.Name)
	assert.Equal(t, "new-grand-hall", updated.Slug)
	assert.Equal(t, int64(2500), updated.Price)
	assert.Equal(t, "salon", updated.Category)

	var stored eventitemdomain.EventItem
	require.NoError(t, f.db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, "New Grand Hall", stored.Name)

	bad := int64(-5)
	_, err = f.svc.Update(ctx, item.ID, supplierID, eventitemdomain.UpdateRequest{Price: &bad})
	assert.ErrorIs(t, err, eventitemdomain.ErrInvalidPrice)
}

func TestUpdateEventItemOwnership(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	ownerID := f.seedAccount(t, supplierdomain.RoleSupplier)
	otherID := f.seedAccount(t, supplierdomain.RoleSupplier)

	item, err := f.svc.Create(ctx, eventitemdomain.CreateRequest{
		SupplierID: ownerID,
		Name:       "Owner Hall",
		Category:   "hall",
		Price:      1000,
	})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = f.svc.Update(ctx, item.ID, otherID, eventitemdomain.UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, eventitemdomain.ErrNotItemOwner)

	err = f.svc.Delete(ctx, item.ID, otherID)
	assert.ErrorIs(t, err, eventitemdomain.ErrNotItemOwner)
}

func TestDeleteEventItem(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	supplierID := f.seedAccount(t, supplierdomain.RoleSupplier)

	item, err := f.svc.Create(ctx, eventitemdomain.CreateRequest{
		SupplierID: supplierID,
		Name:       "Short Lived",
		Category:   "hall",
		Price:      1000,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, item.ID, supplierID))

	_, err = f.svc.Get(ctx, item.ID)
	assert.ErrorIs(t, err, eventitemdomain.ErrEventItemNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, item.ID, supplierID), eventitemdomain.ErrEventItemNotFound)
}
