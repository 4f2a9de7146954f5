package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type repo struct{}

func Provide() eventitemdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *eventitemdomain.EventItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*eventitemdomain.EventItem, error) {
	var item eventitemdomain.EventItem
	res := db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&item)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, item *eventitemdomain.EventItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&eventitemdomain.EventItem{}, "id = ?", id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter eventitemdomain.ListFilter, page pagination.Pagination) ([]*eventitemdomain.EventItem, error) {
	var items []*eventitemdomain.EventItem
	stmt := db.WithContext(ctx).Model(&eventitemdomain.EventItem{})

	if filter.SupplierID != 0 {
		stmt = stmt.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		stmt = stmt.Where("subcategory = ?", filter.Subcategory)
	}
	if filter.City != "" {
		stmt = stmt.Where(datatypes.JSONQuery("location").Equals(filter.City, "city"))
	}
	if filter.Area != "" {
		stmt = stmt.Where(datatypes.JSONQuery("location").Equals(filter.Area, "area"))
	}
	if filter.MinPrice > 0 {
		stmt = stmt.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		stmt = stmt.Where("price <= ?", filter.MaxPrice)
	}
	if filter.People > 0 {
		stmt = stmt.Where("min_capacity <= ? AND max_capacity >= ?", filter.People, filter.People)
	}

	err := stmt.Order("created_at desc, id desc").
		Limit(page.Limit()).
		Offset(int(page.Offset)).
		Find(&items).Error
	return items, err
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&eventitemdomain.EventItem{}).Count(&count).Error
	return count, err
}

func (r *repo) TopCategories(ctx context.Context, db *gorm.DB, limit int) ([]eventitemdomain.CategoryCount, error) {
	var rows []eventitemdomain.CategoryCount
	err := db.WithContext(ctx).Raw(
		`SELECT category, COUNT(*) AS count
		 FROM event_items
		 GROUP BY category
		 ORDER BY count DESC
		 LIMIT ?`, limit,
	).Scan(&rows).Error
	return rows, err
}
