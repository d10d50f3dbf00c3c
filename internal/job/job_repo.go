package job

import (
	"context"
	"database/sql"

	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=job_repo.go -destination=mock/job_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, opening *JobOpening) error
	FindAllByOrganization(ctx context.Context, orgID string) ([]JobOpening, error)
	FindOpenByOrganization(ctx context.Context, orgID string) ([]JobOpening, error)
	FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*JobOpening, error)
	Update(ctx context.Context, opening *JobOpening) error
	Delete(ctx context.Context, orgID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(tx)}
}

func (r *repository) Create(ctx context.Context, opening *JobOpening) error {
	return r.db.WithContext(ctx).Create(opening).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, orgID string) ([]JobOpening, error) {
	var openings []JobOpening
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("created_at DESC").
		Find(&openings).Error
	return openings, err
}

func (r *repository) FindOpenByOrganization(ctx context.Context, orgID string) ([]JobOpening, error) {
	var openings []JobOpening
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("status = ?", StatusOpen).
		Order("created_at DESC").
		Find(&openings).Error
	return openings, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*JobOpening, error) {
	var opening JobOpening
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		First(&opening, "id = ?", id).Error
	return &opening, err
}

func (r *repository) Update(ctx context.Context, opening *JobOpening) error {
	return r.db.WithContext(ctx).Save(opening).Error
}

func (r *repository) Delete(ctx context.Context, orgID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Delete(&JobOpening{}, "id = ?", id).Error
}
