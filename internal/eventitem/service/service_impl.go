package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      eventitemdomain.Repository
	suppliers supplierdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      eventitemdomain.Repository
	Suppliers supplierdomain.Repository
}

func NewService(p ServiceParam) eventitemdomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("eventitem.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		suppliers: p.Suppliers,
	}
}

func (s *Service) Create(ctx context.Context, req eventitemdomain.CreateRequest) (*eventitemdomain.EventItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, eventitemdomain.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, eventitemdomain.ErrInvalidPrice
	}

	owner, err := s.suppliers.FindByID(ctx, s.db, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, supplierdomain.ErrSupplierNotFound
	}
	if owner.Role != supplierdomain.RoleSupplier {
		return nil, supplierdomain.ErrNotSupplier
	}

	item := &eventitemdomain.EventItem{
		ID:          s.genID.Generate(),
		SupplierID:  req.SupplierID,
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Subcategory: strings.ToLower(strings.TrimSpace(req.Subcategory)),
		Price:       req.Price,
		MinCapacity: req.MinCapacity,
		MaxCapacity: req.MaxCapacity,
		Location:    datatypes.NewJSONType(req.Location),
		Images:      datatypes.NewJSONSlice(req.Images),
		Videos:      datatypes.NewJSONSlice(req.Videos),

		AvailableDates:   datatypes.NewJSONSlice(req.AvailableDates),
		AvailabilityFrom: req.AvailabilityFrom,
		AvailabilityTo:   req.AvailabilityTo,
		ExcludedDates:    datatypes.NewJSONSlice(req.ExcludedDates),
	}

	if err := s.repo.Insert(ctx, s.db, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*eventitemdomain.EventItem, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, eventitemdomain.ErrEventItemNotFound
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id, supplierID snowflake.ID, req eventitemdomain.UpdateRequest) (*eventitemdomain.EventItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.SupplierID != supplierID {
		return nil, eventitemdomain.ErrNotItemOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, eventitemdomain.ErrInvalidName
		}
		item.Name = *req.Name
		item.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Subcategory != nil {
		item.Subcategory = strings.ToLower(strings.TrimSpace(*req.Subcategory))
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, eventitemdomain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.MinCapacity != nil {
		item.MinCapacity = *req.MinCapacity
	}
	if req.MaxCapacity != nil {
		item.MaxCapacity = *req.MaxCapacity
	}
	if req.Location != nil {
		item.Location = datatypes.NewJSONType(*req.Location)
	}
	if req.Images != nil {
		item.Images = datatypes.NewJSONSlice(*req.Images)
	}
	if req.Videos != nil {
		item.Videos = datatypes.NewJSONSlice(*req.Videos)
	}
	if req.AvailableDates != nil {
		item.AvailableDates = datatypes.NewJSONSlice(*req.AvailableDates)
	}
	if req.AvailabilityFrom != nil {
		item.AvailabilityFrom = req.AvailabilityFrom
	}
	if req.AvailabilityTo != nil {
		item.AvailabilityTo = req.AvailabilityTo
	}
	if req.ExcludedDates != nil {
		item.ExcludedDates = datatypes.NewJSONSlice(*req.ExcludedDates)
	}

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id, supplierID snowflake.ID) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.SupplierID != supplierID {
		return eventitemdomain.ErrNotItemOwner
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) List(ctx context.Context, filter eventitemdomain.ListFilter, page pagination.Pagination) ([]*eventitemdomain.EventItem, error) {
	// Stored categories are normalized at write time; match the filter
	// the same way so lookups are case-insensitive.
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))
	filter.Subcategory = strings.ToLower(strings.TrimSpace(filter.Subcategory))
	return s.repo.List(ctx, s.db, filter, page)
}
