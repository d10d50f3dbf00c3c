package team

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
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"team not found",
		http.StatusNotFound,
	)
	ErrTeamNameTaken = apperror.New(
		apperror.CodeConflict,
		"a team with this name already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, orgID string, req CreateTeamRequest) (TeamResponse, error)
	GetAll(ctx context.Context, orgID string) ([]TeamResponse, error)
	GetByID(ctx context.Context, orgID, id string) (TeamResponse, error)
	Update(ctx context.Context, orgID, id string, req UpdateTeamRequest) (TeamResponse, error)
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
	req CreateTeamRequest,
) (TeamResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsByName(ctx, orgID, req.Name)
	if err != nil {
		return TeamResponse{}, err
	}
	if taken {
		return TeamResponse{}, ErrTeamNameTaken
	}

	tm := &Team{
		ID:             uuid.New(),
		Name:           req.Name,
		OrganizationID: uuid.MustParse(orgID),
	}

	if err := qtx.Create(ctx, tm); err != nil {
		return TeamResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}

	return mapToResponse(*tm), nil
}

func (s *service) GetAll(
	ctx context.Context,
	orgID string,
) ([]TeamResponse, error) {

	tms, err := s.repo.FindAllByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(tms), nil
}

func (s *service) GetByID(
	ctx context.Context,
	orgID, id string,
) (TeamResponse, error) {

	tm, err := s.repo.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamResponse{}, ErrTeamNotFound
		}
		return TeamResponse{}, err
	}

	return mapToResponse(*tm), nil
}

func (s *service) Update(
	ctx context.Context,
	orgID, id string,
	req UpdateTeamRequest,
) (TeamResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	tm, err := qtx.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamResponse{}, ErrTeamNotFound
		}
		return TeamResponse{}, err
	}

	if req.Name != tm.Name {
		taken, err := qtx.ExistsByName(ctx, orgID, req.Name)
		if err != nil {
			return TeamResponse{}, err
		}
		if taken {
			return TeamResponse{}, ErrTeamNameTaken
		}
	}

	tm.Name = req.Name

	if err := qtx.Update(ctx, tm); err != nil {
		return TeamResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}

	return mapToResponse(*tm), nil
}

func (s *service) Delete(
	ctx context.Context,
	orgID, id string,
) error {
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

func mapToResponse(tm Team) TeamResponse {
	return TeamResponse{
		ID:             tm.ID.String(),
		OrganizationID: tm.OrganizationID.String(),
		Name:           tm.Name,
	}
}

func mapToListResponse(tms []Team) []TeamResponse {
	resp := make([]TeamResponse, len(tms))
	for i, tm := range tms {
		resp[i] = mapToResponse(tm)
	}
	return resp
}
