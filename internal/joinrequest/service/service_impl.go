package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	joinrequestdomain "github.com/monasabatlabs/monasabat/internal/joinrequest/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  joinrequestdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  joinrequestdomain.Repository
}

func NewService(p ServiceParam) joinrequestdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("joinrequest.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Submit(ctx context.Context, req joinrequestdomain.SubmitRequest) (*joinrequestdomain.JoinRequest, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, joinrequestdomain.ErrMissingName
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, joinrequestdomain.ErrMissingPhone
	}

	jr := &joinrequestdomain.JoinRequest{
		ID:          s.genID.Generate(),
		Name:        strings.TrimSpace(req.Name),
		Phone:       strings.TrimSpace(req.Phone),
		ServiceType: strings.TrimSpace(req.ServiceType),
		City:        strings.TrimSpace(req.City),
		Notes:       req.Notes,
		Status:      joinrequestdomain.StatusPending,
	}
	if err := s.repo.Insert(ctx, s.db, jr); err != nil {
		return nil, err
	}

	s.log.Info("join request submitted",
		zap.String("id", jr.ID.String()),
		zap.String("service_type", jr.ServiceType))
	return jr, nil
}

func (s *Service) List(ctx context.Context, filter joinrequestdomain.ListFilter, page pagination.Pagination) ([]*joinrequestdomain.JoinRequest, error) {
	return s.repo.List(ctx, s.db, filter, page)
}

func (s *Service) UpdateStatus(ctx context.Context, id snowflake.ID, status joinrequestdomain.Status) (*joinrequestdomain.JoinRequest, error) {
	switch status {
	case joinrequestdomain.StatusReviewed,
		joinrequestdomain.StatusApproved,
		joinrequestdomain.StatusRejected:
	default:
		return nil, joinrequestdomain.ErrInvalidStatus
	}

	jr, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if jr == nil {
		return nil, joinrequestdomain.ErrJoinRequestNotFound
	}

	if err := s.repo.UpdateStatus(ctx, s.db, id, status); err != nil {
		return nil, err
	}
	jr.Status = status
	return jr, nil
}
