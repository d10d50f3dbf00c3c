package department

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
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"a department with this name already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, orgID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, orgID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, orgID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, orgID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
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
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsByName(ctx, orgID, req.Name)
	if err != nil {
		return DepartmentResponse{}, err
	}
	if taken {
		return DepartmentResponse{}, ErrDepartmentNameTaken
	}

	dept := &Department{
		ID:             uuid.New(),
		Name:           req.Name,
		OrganizationID: uuid.MustParse(orgID),
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(
	ctx context.Context,
	orgID string,
) ([]DepartmentResponse, error) {

	depts, err := s.repo.FindAllByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(depts), nil
}

func (s *service) GetByID(
	ctx context.Context,
	orgID, id string,
) (DepartmentResponse, error) {

	dept, err := s.repo.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	orgID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	if req.Name != dept.Name {
		taken, err := qtx.ExistsByName(ctx, orgID, req.Name)
		if err != nil {
			return DepartmentResponse{}, err
		}
		if taken {
			return DepartmentResponse{}, ErrDepartmentNameTaken
		}
	}

	dept.Name = req.Name

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
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

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:             dept.ID.String(),
		OrganizationID: dept.OrganizationID.String(),
		Name:           dept.Name,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	resp := make([]DepartmentResponse, len(depts))
	for i, dept := range depts {
		resp[i] = mapToResponse(dept)
	}
	return resp
}
