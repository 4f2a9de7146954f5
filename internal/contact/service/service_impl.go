package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	contactdomain "github.com/monasabatlabs/monasabat/internal/contact/domain"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	notificationdomain "github.com/monasabatlabs/monasabat/internal/notification/domain"
	notificationservice "github.com/monasabatlabs/monasabat/internal/notification/service"
	quotadomain "github.com/monasabatlabs/monasabat/internal/quota/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID      *snowflake.Node
	repo       contactdomain.Repository
	items      eventitemdomain.Repository
	suppliers  supplierdomain.Repository
	policy     *quotadomain.Policy
	lifecycle  supplierdomain.Service
	dispatcher *notificationservice.Dispatcher
}

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       contactdomain.Repository
	Items      eventitemdomain.Repository
	Suppliers  supplierdomain.Repository
	Policy     *quotadomain.Policy
	Lifecycle  supplierdomain.Service
	Dispatcher *notificationservice.Dispatcher
}

func NewService(p ServiceParam) contactdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("contact.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		items:      p.Items,
		suppliers:  p.Suppliers,
		policy:     p.Policy,
		lifecycle:  p.Lifecycle,
		dispatcher: p.Dispatcher,
	}
}

// Send implements domain.Service. Request insert and quota count share
// one transaction: a counter failure leaves no orphan request behind.
func (s *Service) Send(ctx context.Context, req contactdomain.SendRequest) (*contactdomain.ContactRequest, error) {
	item, err := s.items.FindByID(ctx, s.db, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, eventitemdomain.ErrEventItemNotFound
	}

	if !s.policy.IsContactOnly(item.Category, item.Subcategory) {
		return nil, contactdomain.ErrNotContactCategory
	}

	cr := &contactdomain.ContactRequest{
		ID:         s.genID.Generate(),
		ClientID:   req.ClientID,
		SupplierID: item.SupplierID,
		ServiceID:  item.ID,
		Message:    req.Message,
		Status:     contactdomain.StatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lifecycle.EnsureUnlocked(ctx, tx, item.SupplierID); err != nil {
			return err
		}
		if err := s.repo.Insert(ctx, tx, cr); err != nil {
			return fmt.Errorf("%w: %v", supplierdomain.ErrStorageUnavailable, err)
		}
		_, err := s.lifecycle.RecordCountedActivity(ctx, tx, item.SupplierID,
			quotadomain.FlowContact, item.Category, item.Subcategory)
		return err
	})
	if err != nil {
		return nil, err
	}

	return cr, nil
}

// UpdateStatus implements domain.Service.
func (s *Service) UpdateStatus(ctx context.Context, requestID, supplierID snowflake.ID, status contactdomain.Status) (*contactdomain.ContactRequest, error) {
	if status != contactdomain.StatusAccepted && status != contactdomain.StatusRejected {
		return nil, contactdomain.ErrInvalidStatus
	}

	cr, err := s.repo.FindByID(ctx, s.db, requestID)
	if err != nil {
		return nil, err
	}
	if cr == nil {
		return nil, contactdomain.ErrContactRequestNotFound
	}
	if cr.SupplierID != supplierID {
		return nil, contactdomain.ErrNotRequestOwner
	}

	if err := s.repo.UpdateStatus(ctx, s.db, requestID, status); err != nil {
		return nil, err
	}
	cr.Status = status

	s.notifyOutcome(ctx, cr)
	return cr, nil
}

func (s *Service) notifyOutcome(ctx context.Context, cr *contactdomain.ContactRequest) {
	supplier, err := s.suppliers.FindByID(ctx, s.db, cr.SupplierID)
	if err != nil || supplier == nil {
		s.log.Warn("skipping outcome notification, supplier lookup failed",
			zap.Error(err), zap.String("supplier_id", cr.SupplierID.String()))
		return
	}

	template := notificationdomain.TemplateContactRequestAccepted
	if cr.Status == contactdomain.StatusRejected {
		template = notificationdomain.TemplateContactRequestRejected
	}
	s.dispatcher.Dispatch(notificationdomain.Notification{
		Phone:       supplier.Phone,
		TemplateKey: template,
		Locale:      supplier.Language,
		Args:        []any{cr.ServiceID.String()},
	})
}

func (s *Service) StatusBetween(ctx context.Context, clientID, supplierID, serviceID snowflake.ID) (contactdomain.Status, error) {
	cr, err := s.repo.FindBetween(ctx, s.db, clientID, supplierID, serviceID)
	if err != nil {
		return "", err
	}
	if cr == nil {
		return "", nil
	}
	return cr.Status, nil
}

func (s *Service) ListByClient(ctx context.Context, clientID snowflake.ID) ([]*contactdomain.ContactRequest, error) {
	return s.repo.ListByClient(ctx, s.db, clientID, pagination.Pagination{})
}

func (s *Service) ListBySupplier(ctx context.Context, supplierID snowflake.ID) ([]*contactdomain.ContactRequest, error) {
	return s.repo.ListBySupplier(ctx, s.db, supplierID, pagination.Pagination{})
}
