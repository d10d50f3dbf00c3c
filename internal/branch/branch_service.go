package branch

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
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"branch not found",
		http.StatusNotFound,
	)
	ErrBranchNameTaken = apperror.New(
		apperror.CodeConflict,
		"a branch with this name already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=branch_service.go -destination=mock/branch_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, orgID string, req CreateBranchRequest) (BranchResponse, error)
	GetAll(ctx context.Context, orgID string) ([]BranchResponse, error)
	GetByID(ctx context.Context, orgID, id string) (BranchResponse, error)
	Update(ctx context.Context, orgID, id string, req UpdateBranchRequest) (BranchResponse, error)
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
	req CreateBranchRequest,
) (BranchResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BranchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsByName(ctx, orgID, req.Name)
	if err != nil {
		return BranchResponse{}, err
	}
	if taken {
		return BranchResponse{}, ErrBranchNameTaken
	}

	br := &Branch{
		ID:             uuid.New(),
		Name:           req.Name,
		OrganizationID: uuid.MustParse(orgID),
	}

	if err := qtx.Create(ctx, br); err != nil {
		return BranchResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BranchResponse{}, err
	}

	return mapToResponse(*br), nil
}

func (s *service) GetAll(
	ctx context.Context,
	orgID string,
) ([]BranchResponse, error) {

	brs, err := s.repo.FindAllByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(brs), nil
}

func (s *service) GetByID(
	ctx context.Context,
	orgID, id string,
) (BranchResponse, error) {

	br, err := s.repo.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, ErrBranchNotFound
		}
		return BranchResponse{}, err
	}

	return mapToResponse(*br), nil
}

func (s *service) Update(
	ctx context.Context,
	orgID, id string,
	req UpdateBranchRequest,
) (BranchResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BranchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	br, err := qtx.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, ErrBranchNotFound
		}
		return BranchResponse{}, err
	}

	if req.Name != br.Name {
		taken, err := qtx.ExistsByName(ctx, orgID, req.Name)
		if err != nil {
			return BranchResponse{}, err
		}
		if taken {
			return BranchResponse{}, ErrBranchNameTaken
		}
	}

	br.Name = req.Name

	if err := qtx.Update(ctx, br); err != nil {
		return BranchResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BranchResponse{}, err
	}

	return mapToResponse(*br), nil
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

func mapToResponse(br Branch) BranchResponse {
	return BranchResponse{
		ID:             br.ID.String(),
		OrganizationID: br.OrganizationID.String(),
		Name:           br.Name,
	}
}

func mapToListResponse(brs []Branch) []BranchResponse {
	resp := make([]BranchResponse, len(brs))
	for i, br := range brs {
		resp[i] = mapToResponse(br)
	}
	return resp
}
