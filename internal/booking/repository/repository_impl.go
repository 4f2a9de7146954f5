package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	bookingdomain "github.com/monasabatlabs/monasabat/internal/booking/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type repo struct{}

func Provide() bookingdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, b *bookingdomain.Booking) error {
	return db.WithContext(ctx).Create(b).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*bookingdomain.Booking, error) {
	var b bookingdomain.Booking
	res := db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&b)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &b, nil
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, page pagination.Pagination) ([]*bookingdomain.Booking, error) {
	return r.list(ctx, db.Where("client_id = ?", clientID), page)
}

func (r *repo) ListBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID, page pagination.Pagination) ([]*bookingdomain.Booking, error) {
	return r.list(ctx, db.Where("supplier_id = ?", supplierID), page)
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*bookingdomain.Booking, error) {
	return r.list(ctx, db, page)
}

func (r *repo) list(ctx context.Context, stmt *gorm.DB, page pagination.Pagination) ([]*bookingdomain.Booking, error) {
	var out []*bookingdomain.Booking
	err := stmt.WithContext(ctx).
		Model(&bookingdomain.Booking{}).
		Order("created_at desc, id desc").
		Limit(page.Limit()).
		Offset(int(page.Offset)).
		Find(&out).Error
	return out, err
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status bookingdomain.Status) error {
	return db.WithContext(ctx).Exec(
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	).Error
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&bookingdomain.Booking{}).Count(&count).Error
	return count, err
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, status bookingdomain.Status) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&bookingdomain.Booking{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repo) ConfirmedRevenue(ctx context.Context, db *gorm.DB) (int64, error) {
	var total *int64
	err := db.WithContext(ctx).Raw(
		`SELECT SUM(paid_amount) FROM bookings WHERE status = ?`,
		bookingdomain.StatusConfirmed,
	).Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
