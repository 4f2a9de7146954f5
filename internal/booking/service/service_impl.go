package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bookingdomain "github.com/monasabatlabs/monasabat/internal/booking/domain"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	quotadomain "github.com/monasabatlabs/monasabat/internal/quota/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

// Deposit collected at booking time, as a share of the item price.
const depositPercent = 10

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID     *snowflake.Node
	repo      bookingdomain.Repository
	items     eventitemdomain.Repository
	policy    *quotadomain.Policy
	lifecycle supplierdomain.Service
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      bookingdomain.Repository
	Items     eventitemdomain.Repository
	Policy    *quotadomain.Policy
	Lifecycle supplierdomain.Service
}

func NewService(p ServiceParam) bookingdomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("booking.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		items:     p.Items,
		policy:    p.Policy,
		lifecycle: p.Lifecycle,
	}
}

// Create implements domain.Service. The booking insert and the quota
// count run in one transaction: if the counter update fails, no booking
// is persisted, and vice versa.
func (s *Service) Create(ctx context.Context, req bookingdomain.CreateRequest) (*bookingdomain.Booking, error) {
	item, err := s.items.FindByID(ctx, s.db, req.EventItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, eventitemdomain.ErrEventItemNotFound
	}

	// Contact-only categories use the direct-contact path, never bookings.
	if s.policy.IsContactOnly(item.Category, item.Subcategory) {
		return nil, bookingdomain.ErrContactOnlyCategory
	}

	if !item.IsDateAvailable(req.EventDate) {
		return nil, bookingdomain.ErrDateUnavailable
	}

	booking := &bookingdomain.Booking{
		ID:             s.genID.Generate(),
		EventItemID:    item.ID,
		SupplierID:     item.SupplierID,
		ClientID:       req.ClientID,
		EventDate:      req.EventDate,
		NumberOfPeople: req.NumberOfPeople,
		TotalPrice:     item.Price,
		PaidAmount:     item.Price * depositPercent / 100,
		Status:         bookingdomain.StatusPending,
	}

	// Only quota-limited categories check lock state; everything else
	// books purely on availability.
	countable := s.policy.IsCountable(quotadomain.FlowBooking, item.Category, item.Subcategory)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if countable {
			if err := s.lifecycle.EnsureUnlocked(ctx, tx, item.SupplierID); err != nil {
				return err
			}
		}
		if err := s.repo.Insert(ctx, tx, booking); err != nil {
			return fmt.Errorf("%w: %v", supplierdomain.ErrStorageUnavailable, err)
		}
		_, err := s.lifecycle.RecordCountedActivity(ctx, tx, item.SupplierID,
			quotadomain.FlowBooking, item.Category, item.Subcategory)
		return err
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*bookingdomain.Booking, error) {
	b, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, bookingdomain.ErrBookingNotFound
	}
	return b, nil
}

func (s *Service) ListByClient(ctx context.Context, clientID snowflake.ID) ([]*bookingdomain.Booking, error) {
	return s.repo.ListByClient(ctx, s.db, clientID, pagination.Pagination{})
}

func (s *Service) ListBySupplier(ctx context.Context, supplierID snowflake.ID) ([]*bookingdomain.Booking, error) {
	return s.repo.ListBySupplier(ctx, s.db, supplierID, pagination.Pagination{})
}

func (s *Service) ListAll(ctx context.Context) ([]*bookingdomain.Booking, error) {
	return s.repo.List(ctx, s.db, pagination.Pagination{})
}

// UpdateStatus implements domain.Service. Counting happened at creation;
// transitions here never touch the quota.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, supplierID snowflake.ID, status bookingdomain.Status) (*bookingdomain.Booking, error) {
	if status != bookingdomain.StatusConfirmed && status != bookingdomain.StatusCancelled {
		return nil, bookingdomain.ErrInvalidStatus
	}

	b, err := s.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.SupplierID != supplierID {
		return nil, bookingdomain.ErrNotBookingOwner
	}

	if err := s.repo.UpdateStatus(ctx, s.db, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *Service) CancelByClient(ctx context.Context, bookingID, clientID snowflake.ID) error {
	b, err := s.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.ClientID != clientID {
		return bookingdomain.ErrNotBookingOwner
	}
	if b.Status != bookingdomain.StatusPending {
		return bookingdomain.ErrNotPending
	}
	return s.repo.UpdateStatus(ctx, s.db, bookingID, bookingdomain.StatusCancelled)
}
