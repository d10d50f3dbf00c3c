package organization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	orgerrors "krishr/internal/organization/errors"
	"krishr/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Counter namespace shared across the deployment; krisIDs are unique
// globally, not per tenant.
const krisIDCounterScope = "global"

//go:generate mockgen -source=organization_service.go -destination=mock/organization_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateOrganizationRequest) (OrganizationResponse, error)
	GetByID(ctx context.Context, id string) (OrganizationResponse, error)
	GetByKrisID(ctx context.Context, krisID string) (OrganizationResponse, error)
	Update(ctx context.Context, id string, req UpdateOrganizationRequest) (OrganizationResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("organization.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("organization.service")
	}
	return &service{db: db, repo: repo, counter: counterRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateOrganizationRequest) (OrganizationResponse, error) {
	s.logger.Debug("create organization requested", zap.String("name", req.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create organization begin tx failed", zap.Error(err))
		return OrganizationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsByField(ctx, UniqueFieldName, req.Name)
	if err != nil {
		s.logger.Error("create organization name check failed", zap.Error(err))
		return OrganizationResponse{}, err
	}
	if taken {
		return OrganizationResponse{}, orgerrors.ErrOrganizationNameTaken
	}

	taken, err = qtx.ExistsByField(ctx, UniqueFieldEmail, req.Email)
	if err != nil {
		s.logger.Error("create organization email check failed", zap.Error(err))
		return OrganizationResponse{}, err
	}
	if taken {
		return OrganizationResponse{}, orgerrors.ErrOrganizationEmailTaken
	}

	nextVal, err := s.counter.GetNextValue(ctx, krisIDCounterScope, "kris_id")
	if err != nil {
		s.logger.Error("create organization kris id generation failed", zap.Error(err))
		return OrganizationResponse{}, err
	}

	org := &Organization{
		ID:                 uuid.New(),
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		Industry:           req.Industry,
		RegistrationNumber: req.RegistrationNumber,
		KrisID:             fmt.Sprintf("KRIS-%06d", nextVal),
	}

	if err := qtx.Create(ctx, org); err != nil {
		s.logger.Error("create organization persist failed", zap.Error(err))
		return OrganizationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create organization commit failed", zap.Error(err))
		return OrganizationResponse{}, err
	}

	s.logger.Info("create organization success",
		zap.String("organization_id", org.ID.String()),
		zap.String("kris_id", org.KrisID),
	)

	return mapToResponse(*org), nil
}

func (s *service) GetByID(ctx context.Context, id string) (OrganizationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return OrganizationResponse{}, orgerrors.ErrInvalidOrganizationID
	}

	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrganizationResponse{}, orgerrors.ErrOrganizationNotFound
		}
		return OrganizationResponse{}, err
	}

	return mapToResponse(*org), nil
}

func (s *service) GetByKrisID(ctx context.Context, krisID string) (OrganizationResponse, error) {
	org, err := s.repo.FindByKrisID(ctx, krisID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrganizationResponse{}, orgerrors.ErrOrganizationNotFound
		}
		return OrganizationResponse{}, err
	}

	return mapToResponse(*org), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateOrganizationRequest) (OrganizationResponse, error) {
	s.logger.Debug("update organization requested", zap.String("organization_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return OrganizationResponse{}, orgerrors.ErrInvalidOrganizationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update organization begin tx failed", zap.Error(err))
		return OrganizationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	org, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrganizationResponse{}, orgerrors.ErrOrganizationNotFound
		}
		return OrganizationResponse{}, err
	}

	if req.Name != "" && req.Name != org.Name {
		taken, err := qtx.ExistsByField(ctx, UniqueFieldName, req.Name)
		if err != nil {
			return OrganizationResponse{}, err
		}
		if taken {
			return OrganizationResponse{}, orgerrors.ErrOrganizationNameTaken
		}
		org.Name = req.Name
	}
	if req.Email != "" && req.Email != org.Email {
		taken, err := qtx.ExistsByField(ctx, UniqueFieldEmail, req.Email)
		if err != nil {
			return OrganizationResponse{}, err
		}
		if taken {
			return OrganizationResponse{}, orgerrors.ErrOrganizationEmailTaken
		}
		org.Email = req.Email
	}
	if req.Phone != "" {
		org.Phone = req.Phone
	}
	if req.Address != "" {
		org.Address = req.Address
	}
	if req.Industry != "" {
		org.Industry = req.Industry
	}
	if req.RegistrationNumber != "" {
		org.RegistrationNumber = req.RegistrationNumber
	}

	if err := qtx.Update(ctx, org); err != nil {
		s.logger.Error("update organization persist failed", zap.Error(err))
		return OrganizationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update organization commit failed", zap.Error(err))
		return OrganizationResponse{}, err
	}

	s.logger.Info("update organization success", zap.String("organization_id", id))

	return mapToResponse(*org), nil
}

func mapToResponse(org Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:                 org.ID.String(),
		Name:               org.Name,
		Email:              org.Email,
		Phone:              org.Phone,
		Address:            org.Address,
		Industry:           org.Industry,
		RegistrationNumber: org.RegistrationNumber,
		KrisID:             org.KrisID,
	}
}
