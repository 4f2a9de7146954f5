package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	notificationdomain "github.com/monasabatlabs/monasabat/internal/notification/domain"
	notificationservice "github.com/monasabatlabs/monasabat/internal/notification/service"
	"github.com/monasabatlabs/monasabat/internal/observability"
	quotadomain "github.com/monasabatlabs/monasabat/internal/quota/domain"
	subscriptiondomain "github.com/monasabatlabs/monasabat/internal/subscription/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	usagedomain "github.com/monasabatlabs/monasabat/internal/usage/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID         *snowflake.Node
	repo          supplierdomain.Repository
	counter       usagedomain.Counter
	policy        *quotadomain.Policy
	subscriptions subscriptiondomain.Service
	dispatcher    *notificationservice.Dispatcher
	metrics       *observability.Metrics
}

type ServiceParam struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Repo          supplierdomain.Repository
	Counter       usagedomain.Counter
	Policy        *quotadomain.Policy
	Subscriptions subscriptiondomain.Service
	Dispatcher    *notificationservice.Dispatcher
	Metrics       *observability.Metrics
}

func NewService(p ServiceParam) supplierdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("supplier.service"),
		genID:         p.GenID,
		repo:          p.Repo,
		counter:       p.Counter,
		policy:        p.Policy,
		subscriptions: p.Subscriptions,
		dispatcher:    p.Dispatcher,
		metrics:       p.Metrics,
	}
}

// RegisterFromPhone implements domain.Service. Accounts are created on
// first OTP authentication with the client role.
func (s *Service) RegisterFromPhone(ctx context.Context, phone string) (*supplierdomain.Supplier, error) {
	existing, err := s.repo.FindByPhone(ctx, s.db, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	account := &supplierdomain.Supplier{
		ID:    s.genID.Generate(),
		Name:  "User",
		Phone: phone,
		Role:  supplierdomain.RoleClient,
	}
	if err := s.repo.Insert(ctx, s.db, account); err != nil {
		return nil, err
	}
	s.log.Info("account created on first authentication",
		zap.String("id", account.ID.String()))
	return account, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*supplierdomain.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, supplierdomain.ErrSupplierNotFound
	}
	return supplier, nil
}

func (s *Service) List(ctx context.Context, filter supplierdomain.ListFilter) ([]*supplierdomain.Supplier, error) {
	return s.repo.List(ctx, s.db, filter, pagination.Pagination{})
}

// EnsureUnlocked implements domain.Service.
func (s *Service) EnsureUnlocked(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	if tx == nil {
		tx = s.db
	}
	supplier, err := s.repo.FindByID(ctx, tx, id)
	if err != nil {
		return storageErr(err)
	}
	if supplier == nil {
		return supplierdomain.ErrSupplierNotFound
	}
	if supplier.IsLocked {
		return supplierdomain.ErrSupplierLocked
	}
	return nil
}

// RecordCountedActivity implements domain.Service. The counter increment
// is a single atomic statement; lock and warning transitions are
// conditional updates so concurrent threshold crossings apply (and
// notify) exactly once.
func (s *Service) RecordCountedActivity(ctx context.Context, tx *gorm.DB, id snowflake.ID, flow quotadomain.Flow, category, subcategory string) (supplierdomain.ActivityResult, error) {
	if tx == nil {
		tx = s.db
	}

	if !s.policy.IsCountable(flow, category, subcategory) {
		// Non-countable categories never touch quota or lock state.
		return supplierdomain.ActivityResult{Counted: false}, nil
	}

	supplier, err := s.repo.FindByID(ctx, tx, id)
	if err != nil {
		return supplierdomain.ActivityResult{}, storageErr(err)
	}
	if supplier == nil {
		return supplierdomain.ActivityResult{}, supplierdomain.ErrSupplierNotFound
	}

	// Resolve the limit before counting so one limit applies to the whole
	// evaluation.
	plan, err := s.subscriptions.ActivePlan(ctx, id)
	if err != nil {
		return supplierdomain.ActivityResult{}, err
	}
	limit, err := s.policy.LimitFor(plan)
	if err != nil {
		return supplierdomain.ActivityResult{}, err
	}

	newCount, err := s.counter.IncrementAndGet(ctx, tx, id)
	if err != nil {
		if errors.Is(err, usagedomain.ErrSupplierNotFound) {
			return supplierdomain.ActivityResult{}, supplierdomain.ErrSupplierNotFound
		}
		return supplierdomain.ActivityResult{}, storageErr(err)
	}
	s.metrics.ActivitiesCounted.WithLabelValues(string(flow)).Inc()

	result := supplierdomain.ActivityResult{
		Counted:   true,
		NewCount:  newCount,
		Limit:     limit,
		Remaining: max64(0, int64(limit)-newCount),
	}

	switch {
	case s.policy.ShouldLock(newCount, limit):
		applied, err := s.repo.Lock(ctx, tx, id, supplierdomain.LockReasonQuotaExceeded)
		if err != nil {
			return supplierdomain.ActivityResult{}, storageErr(err)
		}
		if applied {
			result.Locked = true
			s.metrics.LocksApplied.Inc()
			s.log.Warn("supplier locked for exceeding quota",
				zap.String("supplier_id", id.String()),
				zap.Int64("count", newCount),
				zap.Int("limit", limit))
			s.dispatcher.Dispatch(notificationdomain.Notification{
				Phone:       supplier.Phone,
				TemplateKey: notificationdomain.TemplateQuotaLocked,
				Locale:      supplier.Language,
				Args:        []any{limit},
			})
		}

	case s.policy.ShouldWarn(newCount, limit):
		won, err := s.repo.MarkWarned(ctx, tx, id)
		if err != nil {
			return supplierdomain.ActivityResult{}, storageErr(err)
		}
		if won {
			result.Warned = true
			s.metrics.WarningsSent.Inc()
			s.dispatcher.Dispatch(notificationdomain.Notification{
				Phone:       supplier.Phone,
				TemplateKey: notificationdomain.TemplateQuotaWarning,
				Locale:      supplier.Language,
				Args:        []any{newCount, limit, result.Remaining},
			})
		}
	}

	return result, nil
}

// Unlock implements domain.Service. Unlocking an already-unlocked
// supplier is a no-op success.
func (s *Service) Unlock(ctx context.Context, id snowflake.ID) error {
	supplier, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return supplierdomain.ErrSupplierNotFound
	}

	if err := s.repo.ResetQuota(ctx, s.db, id); err != nil {
		return storageErr(err)
	}
	s.log.Info("supplier unlocked", zap.String("supplier_id", id.String()))
	return nil
}

func (s *Service) QuotaStatus(ctx context.Context, id snowflake.ID) (supplierdomain.QuotaStatus, error) {
	supplier, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return supplierdomain.QuotaStatus{}, err
	}
	if supplier == nil {
		return supplierdomain.QuotaStatus{}, supplierdomain.ErrSupplierNotFound
	}

	plan, err := s.subscriptions.ActivePlan(ctx, id)
	if err != nil {
		return supplierdomain.QuotaStatus{}, err
	}
	limit, err := s.policy.LimitFor(plan)
	if err != nil {
		return supplierdomain.QuotaStatus{}, err
	}

	percent := float64(supplier.UsageCount) / float64(limit) * 100
	if percent > 100 {
		percent = 100
	}

	return supplierdomain.QuotaStatus{
		UsageCount: supplier.UsageCount,
		Limit:      limit,
		Remaining:  max64(0, int64(limit)-supplier.UsageCount),
		Percent:    percent,
		HasWarning: supplier.UsageCount >= int64(s.policy.WarningThreshold(limit)),
		IsLocked:   supplier.IsLocked,
		LockReason: supplier.LockReason,
	}, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// storageErr surfaces a backing-store failure as the retryable
// storage_unavailable sentinel while keeping the cause in the message.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", supplierdomain.ErrStorageUnavailable, err)
}
