package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/monasabatlabs/monasabat/internal/clock"
	"github.com/monasabatlabs/monasabat/internal/config"
	notificationdomain "github.com/monasabatlabs/monasabat/internal/notification/domain"
	notificationservice "github.com/monasabatlabs/monasabat/internal/notification/service"
	quotadomain "github.com/monasabatlabs/monasabat/internal/quota/domain"
	subscriptiondomain "github.com/monasabatlabs/monasabat/internal/subscription/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID      *snowflake.Node
	clock      clock.Clock
	cfg        config.QuotaConfig
	policy     *quotadomain.Policy
	repo       subscriptiondomain.Repository
	suppliers  supplierdomain.Repository
	dispatcher *notificationservice.Dispatcher
}

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Config     config.Config
	Policy     *quotadomain.Policy
	Repo       subscriptiondomain.Repository
	Suppliers  supplierdomain.Repository
	Dispatcher *notificationservice.Dispatcher
}

func NewService(p ServiceParam) subscriptiondomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("subscription.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		cfg:        p.Config.Quota,
		policy:     p.Policy,
		repo:       p.Repo,
		suppliers:  p.Suppliers,
		dispatcher: p.Dispatcher,
	}
}

// CreateOrRenew implements domain.Service. The prior active subscription
// (if any) is expired and the supplier's quota state fully reset in the
// same transaction, so the single-active invariant holds even when two
// renewals race.
func (s *Service) CreateOrRenew(ctx context.Context, supplierID snowflake.ID, plan string) (*subscriptiondomain.Subscription, error) {
	if !s.policy.KnownPlan(plan) {
		return nil, quotadomain.ErrUnknownPlan
	}

	supplier, err := s.suppliers.FindByID(ctx, s.db, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, subscriptiondomain.ErrSupplierNotFound
	}

	now := s.clock.Now(ctx)
	sub := &subscriptiondomain.Subscription{
		ID:         s.genID.Generate(),
		SupplierID: supplierID,
		Plan:       plan,
		Status:     subscriptiondomain.StatusActive,
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, s.durationDays()),
		Amount:     s.cfg.PlanAmounts[plan],
		PaymentRef: uuid.NewString(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expired, err := s.repo.ExpireActiveBySupplier(ctx, tx, supplierID)
		if err != nil {
			return err
		}
		if expired > 0 {
			s.log.Info("expired prior subscription on renewal",
				zap.String("supplier_id", supplierID.String()),
				zap.Int64("rows", expired))
		}

		if err := s.repo.Insert(ctx, tx, sub); err != nil {
			return err
		}

		// Identical reset to the admin unlock path.
		return s.suppliers.ResetQuota(ctx, tx, supplierID)
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(notificationdomain.Notification{
		Phone:       supplier.Phone,
		TemplateKey: notificationdomain.TemplateSubscriptionActivated,
		Locale:      supplier.Language,
		Args:        []any{plan},
	})

	return sub, nil
}

// Active implements domain.Service with read-side expiry: a stale
// active-status row is marked expired here rather than waiting for the
// background sweep.
func (s *Service) Active(ctx context.Context, supplierID snowflake.ID) (*subscriptiondomain.Subscription, error) {
	sub, err := s.repo.FindActiveBySupplier(ctx, s.db, supplierID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	if !sub.ActiveAt(s.clock.Now(ctx)) {
		if err := s.repo.UpdateStatus(ctx, s.db, sub.ID, subscriptiondomain.StatusExpired); err != nil {
			s.log.Warn("failed to mark stale subscription expired",
				zap.Error(err), zap.String("subscription_id", sub.ID.String()))
		}
		return nil, nil
	}
	return sub, nil
}

func (s *Service) ActivePlan(ctx context.Context, supplierID snowflake.ID) (string, error) {
	sub, err := s.Active(ctx, supplierID)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return "", nil
	}
	return sub.Plan, nil
}

// Cancel implements domain.Service. Cancellation does not touch lock or
// usage state.
func (s *Service) Cancel(ctx context.Context, supplierID snowflake.ID) error {
	sub, err := s.Active(ctx, supplierID)
	if err != nil {
		return err
	}
	if sub == nil {
		return subscriptiondomain.ErrSubscriptionNotFound
	}
	return s.repo.UpdateStatus(ctx, s.db, sub.ID, subscriptiondomain.StatusCancelled)
}

func (s *Service) durationDays() int {
	if s.cfg.PlanDurationDays > 0 {
		return s.cfg.PlanDurationDays
	}
	return 30
}
