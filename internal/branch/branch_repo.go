package branch

import (
	"context"
	"database/sql"

	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_repo.go -destination=mock/branch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, br *Branch) error
	FindAllByOrganization(ctx context.Context, orgID string) ([]Branch, error)
	FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Branch, error)
	ExistsByName(ctx context.Context, orgID string, name string) (bool, error)
	Update(ctx context.Context, br *Branch) error
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

func (r *repository) Create(ctx context.Context, br *Branch) error {
	return r.db.WithContext(ctx).Create(br).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, orgID string) ([]Branch, error) {
	var brs []Branch
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("name ASC").
		Find(&brs).Error
	return brs, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Branch, error) {
	var br Branch
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		First(&br, "id = ?", id).Error
	return &br, err
}

func (r *repository) ExistsByName(ctx context.Context, orgID string, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Branch{}).
		Scopes(tenant.Scope(orgID)).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, br *Branch) error {
	return r.db.WithContext(ctx).Save(br).Error
}

func (r *repository) Delete(ctx context.Context, orgID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Delete(&Branch{}, "id = ?", id).Error
}
