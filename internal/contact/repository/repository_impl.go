package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	contactdomain "github.com/monasabatlabs/monasabat/internal/contact/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type repo struct{}

func Provide() contactdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cr *contactdomain.ContactRequest) error {
	return db.WithContext(ctx).Create(cr).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*contactdomain.ContactRequest, error) {
	var cr contactdomain.ContactRequest
	res := db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&cr)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &cr, nil
}

func (r *repo) FindBetween(ctx context.Context, db *gorm.DB, clientID, supplierID, serviceID snowflake.ID) (*contactdomain.ContactRequest, error) {
	var cr contactdomain.ContactRequest
	res := db.WithContext(ctx).
		Where("client_id = ? AND supplier_id = ? AND service_id = ?", clientID, supplierID, serviceID).
		Order("created_at desc").
		Limit(1).
		Find(&cr)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &cr, nil
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, page pagination.Pagination) ([]*contactdomain.ContactRequest, error) {
	return r.list(ctx, db.Where("client_id = ?", clientID), page)
}

func (r *repo) ListBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID, page pagination.Pagination) ([]*contactdomain.ContactRequest, error) {
	return r.list(ctx, db.Where("supplier_id = ?", supplierID), page)
}

func (r *repo) list(ctx context.Context, stmt *gorm.DB, page pagination.Pagination) ([]*contactdomain.ContactRequest, error) {
	var out []*contactdomain.ContactRequest
	err := stmt.WithContext(ctx).
		Model(&contactdomain.ContactRequest{}).
		Order("created_at desc, id desc").
		Limit(page.Limit()).
		Offset(int(page.Offset)).
		Find(&out).Error
	return out, err
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status contactdomain.Status) error {
	return db.WithContext(ctx).Exec(
		`UPDATE contact_requests SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	).Error
}
