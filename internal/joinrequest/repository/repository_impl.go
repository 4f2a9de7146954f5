package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	joinrequestdomain "github.com/monasabatlabs/monasabat/internal/joinrequest/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type repo struct{}

func Provide() joinrequestdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, jr *joinrequestdomain.JoinRequest) error {
	return db.WithContext(ctx).Create(jr).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*joinrequestdomain.JoinRequest, error) {
	var jr joinrequestdomain.JoinRequest
	res := db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&jr)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &jr, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter joinrequestdomain.ListFilter, page pagination.Pagination) ([]*joinrequestdomain.JoinRequest, error) {
	stmt := db.WithContext(ctx).Model(&joinrequestdomain.JoinRequest{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	var out []*joinrequestdomain.JoinRequest
	err := stmt.Order("created_at desc, id desc").
		Limit(page.Limit()).
		Offset(int(page.Offset)).
		Find(&out).Error
	return out, err
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status joinrequestdomain.Status) error {
	return db.WithContext(ctx).
		Model(&joinrequestdomain.JoinRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}
