package job

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"krishr/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJobOpeningNotFound = apperror.New(
		apperror.CodeNotFound,
		"job opening not found",
		http.StatusNotFound,
	)
	ErrJobOpeningClosed = apperror.New(
		apperror.CodeInvalidState,
		"job opening is already closed",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=job_service.go -destination=mock/job_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, orgID string, req CreateJobOpeningRequest) (JobOpeningResponse, error)
	GetAll(ctx context.Context, orgID string) ([]JobOpeningResponse, error)
	GetOpen(ctx context.Context, orgID string) ([]JobOpeningResponse, error)
	GetByID(ctx context.Context, orgID, id string) (JobOpeningResponse, error)
	Update(ctx context.Context, orgID, id string, req UpdateJobOpeningRequest) (JobOpeningResponse, error)
	Close(ctx context.Context, orgID, id string) (JobOpeningResponse, error)
	Delete(ctx context.Context, orgID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	orgID string,
	req CreateJobOpeningRequest,
) (JobOpeningResponse, error) {

	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return JobOpeningResponse{}, ErrJobOpeningNotFound
	}

	employmentType := req.EmploymentType
	if employmentType == "" {
		employmentType = "FULL_TIME"
	}

	opening := &JobOpening{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: employmentType,
		Status:         StatusOpen,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobOpeningResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, opening); err != nil {
		return JobOpeningResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobOpeningResponse{}, err
	}

	return mapToResponse(*opening), nil
}

func (s *service) GetAll(ctx context.Context, orgID string) ([]JobOpeningResponse, error) {
	openings, err := s.repo.FindAllByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(openings), nil
}

func (s *service) GetOpen(ctx context.Context, orgID string) ([]JobOpeningResponse, error) {
	openings, err := s.repo.FindOpenByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(openings), nil
}

func (s *service) GetByID(ctx context.Context, orgID, id string) (JobOpeningResponse, error) {
	opening, err := s.repo.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobOpeningResponse{}, ErrJobOpeningNotFound
		}
		return JobOpeningResponse{}, err
	}
	return mapToResponse(*opening), nil
}

func (s *service) Update(
	ctx context.Context,
	orgID, id string,
	req UpdateJobOpeningRequest,
) (JobOpeningResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobOpeningResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	opening, err := qtx.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobOpeningResponse{}, ErrJobOpeningNotFound
		}
		return JobOpeningResponse{}, err
	}

	if req.Title != "" {
		opening.Title = req.Title
	}
	if req.Description != "" {
		opening.Description = req.Description
	}
	if req.Location != "" {
		opening.Location = req.Location
	}
	if req.EmploymentType != "" {
		opening.EmploymentType = req.EmploymentType
	}

	if err := qtx.Update(ctx, opening); err != nil {
		return JobOpeningResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobOpeningResponse{}, err
	}

	return mapToResponse(*opening), nil
}

func (s *service) Close(ctx context.Context, orgID, id string) (JobOpeningResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobOpeningResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	opening, err := qtx.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobOpeningResponse{}, ErrJobOpeningNotFound
		}
		return JobOpeningResponse{}, err
	}
	if opening.Status == StatusClosed {
		return JobOpeningResponse{}, ErrJobOpeningClosed
	}

	opening.Status = StatusClosed
	if err := qtx.Update(ctx, opening); err != nil {
		return JobOpeningResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobOpeningResponse{}, err
	}

	return mapToResponse(*opening), nil
}

func (s *service) Delete(ctx context.Context, orgID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, orgID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(opening JobOpening) JobOpeningResponse {
	return JobOpeningResponse{
		ID:             opening.ID.String(),
		OrganizationID: opening.OrganizationID.String(),
		Title:          opening.Title,
		Description:    opening.Description,
		Location:       opening.Location,
		EmploymentType: opening.EmploymentType,
		Status:         opening.Status,
	}
}

func mapToListResponse(openings []JobOpening) []JobOpeningResponse {
	resp := make([]JobOpeningResponse, len(openings))
	for i, opening := range openings {
		resp[i] = mapToResponse(opening)
	}
	return resp
}
