package client

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
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"client not found",
		http.StatusNotFound,
	)
	ErrClientNameTaken = apperror.New(
		apperror.CodeConflict,
		"a client with this name already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, orgID string, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context, orgID string) ([]ClientResponse, error)
	GetByID(ctx context.Context, orgID, id string) (ClientResponse, error)
	Update(ctx context.Context, orgID, id string, req UpdateClientRequest) (ClientResponse, error)
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
	req CreateClientRequest,
) (ClientResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsByName(ctx, orgID, req.Name)
	if err != nil {
		return ClientResponse{}, err
	}
	if taken {
		return ClientResponse{}, ErrClientNameTaken
	}

	cl := &Client{
		ID:             uuid.New(),
		Name:           req.Name,
		OrganizationID: uuid.MustParse(orgID),
	}

	if err := qtx.Create(ctx, cl); err != nil {
		return ClientResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	return mapToResponse(*cl), nil
}

func (s *service) GetAll(
	ctx context.Context,
	orgID string,
) ([]ClientResponse, error) {

	cls, err := s.repo.FindAllByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(cls), nil
}

func (s *service) GetByID(
	ctx context.Context,
	orgID, id string,
) (ClientResponse, error) {

	cl, err := s.repo.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, ErrClientNotFound
		}
		return ClientResponse{}, err
	}

	return mapToResponse(*cl), nil
}

func (s *service) Update(
	ctx context.Context,
	orgID, id string,
	req UpdateClientRequest,
) (ClientResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cl, err := qtx.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, ErrClientNotFound
		}
		return ClientResponse{}, err
	}

	if req.Name != cl.Name {
		taken, err := qtx.ExistsByName(ctx, orgID, req.Name)
		if err != nil {
			return ClientResponse{}, err
		}
		if taken {
			return ClientResponse{}, ErrClientNameTaken
		}
	}

	cl.Name = req.Name

	if err := qtx.Update(ctx, cl); err != nil {
		return ClientResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	return mapToResponse(*cl), nil
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

func mapToResponse(cl Client) ClientResponse {
	return ClientResponse{
		ID:             cl.ID.String(),
		OrganizationID: cl.OrganizationID.String(),
		Name:           cl.Name,
	}
}

func mapToListResponse(cls []Client) []ClientResponse {
	resp := make([]ClientResponse, len(cls))
	for i, cl := range cls {
		resp[i] = mapToResponse(cl)
	}
	return resp
}
