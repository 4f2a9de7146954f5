package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	admindomain "github.com/monasabatlabs/monasabat/internal/admin/domain"
	bookingdomain "github.com/monasabatlabs/monasabat/internal/booking/domain"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
)

const topCategoriesLimit = 5

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	suppliers supplierdomain.Repository
	items     eventitemdomain.Repository
	bookings  bookingdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Suppliers supplierdomain.Repository
	Items     eventitemdomain.Repository
	Bookings  bookingdomain.Repository
}

func NewService(p ServiceParam) admindomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("admin.service"),
		suppliers: p.Suppliers,
		items:     p.Items,
		bookings:  p.Bookings,
	}
}

// Stats composes the dashboard from explicit count queries; there is no
// cross-entity join magic to keep storage semantics out of callers.
func (s *Service) Stats(ctx context.Context) (admindomain.Stats, error) {
	var out admindomain.Stats
	var err error

	if out.TotalUsers, err = s.suppliers.Count(ctx, s.db); err != nil {
		return out, err
	}
	if out.TotalSuppliers, err = s.suppliers.CountByRole(ctx, s.db, supplierdomain.RoleSupplier); err != nil {
		return out, err
	}
	if out.TotalServices, err = s.items.Count(ctx, s.db); err != nil {
		return out, err
	}
	if out.TotalBookings, err = s.bookings.Count(ctx, s.db); err != nil {
		return out, err
	}
	if out.ConfirmedBookings, err = s.bookings.CountByStatus(ctx, s.db, bookingdomain.StatusConfirmed); err != nil {
		return out, err
	}
	if out.CancelledBookings, err = s.bookings.CountByStatus(ctx, s.db, bookingdomain.StatusCancelled); err != nil {
		return out, err
	}
	if out.TotalRevenue, err = s.bookings.ConfirmedRevenue(ctx, s.db); err != nil {
		return out, err
	}
	if out.TopCategories, err = s.items.TopCategories(ctx, s.db, topCategoriesLimit); err != nil {
		return out, err
	}
	return out, nil
}
