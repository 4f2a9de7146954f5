package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	subscriptiondomain "github.com/monasabatlabs/monasabat/internal/subscription/domain"
)

type repo struct{}

func Provide() subscriptiondomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, s *subscriptiondomain.Subscription) error {
	return db.WithContext(ctx).Create(s).Error
}

func (r *repo) FindActiveBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) (*subscriptiondomain.Subscription, error) {
	var sub subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM subscriptions
		 WHERE supplier_id = ? AND status = ?
		 ORDER BY start_date DESC
		 LIMIT 1`,
		supplierID, subscriptiondomain.StatusActive,
	).Scan(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.ID == 0 {
		return nil, nil
	}
	return &sub, nil
}

func (r *repo) ListBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) ([]subscriptiondomain.Subscription, error) {
	var subs []subscriptiondomain.Subscription
	err := db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("start_date desc").
		Find(&subs).Error
	return subs, err
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status subscriptiondomain.Status) error {
	return db.WithContext(ctx).Exec(
		`UPDATE subscriptions SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	).Error
}

func (r *repo) ExpireActiveBySupplier(ctx context.Context, db *gorm.DB, supplierID snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE subscriptions SET status = ?, updated_at = ?
		 WHERE supplier_id = ? AND status = ?`,
		subscriptiondomain.StatusExpired, time.Now().UTC(),
		supplierID, subscriptiondomain.StatusActive,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) ExpireAllActiveBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE subscriptions SET status = ?, updated_at = ?
		 WHERE status = ? AND end_date < ?`,
		subscriptiondomain.StatusExpired, time.Now().UTC(),
		subscriptiondomain.StatusActive, cutoff,
	)
	return res.RowsAffected, res.Error
}
