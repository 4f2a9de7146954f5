package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type repo struct{}

func Provide() supplierdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, s *supplierdomain.Supplier) error {
	return db.WithContext(ctx).Create(s).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*supplierdomain.Supplier, error) {
	var s supplierdomain.Supplier
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM suppliers WHERE id = ?`, id,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*supplierdomain.Supplier, error) {
	var s supplierdomain.Supplier
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM suppliers WHERE phone = ?`, phone,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter supplierdomain.ListFilter, page pagination.Pagination) ([]*supplierdomain.Supplier, error) {
	var out []*supplierdomain.Supplier
	stmt := db.WithContext(ctx).Model(&supplierdomain.Supplier{})

	if filter.Role != "" {
		stmt = stmt.Where("role = ?", filter.Role)
	}
	if filter.Locked != nil {
		stmt = stmt.Where("is_locked = ?", *filter.Locked)
	}

	err := stmt.Order("created_at desc, id desc").
		Limit(page.Limit()).
		Offset(int(page.Offset)).
		Find(&out).Error
	return out, err
}

func (r *repo) CountByRole(ctx context.Context, db *gorm.DB, role supplierdomain.Role) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&supplierdomain.Supplier{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&supplierdomain.Supplier{}).Count(&count).Error
	return count, err
}

func (r *repo) Lock(ctx context.Context, db *gorm.DB, id snowflake.ID, reason string) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE suppliers SET is_locked = ?, lock_reason = ?, updated_at = ?
		 WHERE id = ? AND is_locked = ?`,
		true, reason, time.Now().UTC(), id, false,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repo) MarkWarned(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE suppliers SET warning_sent = ?, updated_at = ?
		 WHERE id = ? AND warning_sent = ?`,
		true, time.Now().UTC(), id, false,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repo) ResetQuota(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE suppliers
		 SET usage_count = 0, is_locked = ?, lock_reason = '', warning_sent = ?, updated_at = ?
		 WHERE id = ?`,
		false, false, time.Now().UTC(), id,
	).Error
}
