package team

import (
	"context"
	"database/sql"

	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, tm *Team) error
	FindAllByOrganization(ctx context.Context, orgID string) ([]Team, error)
	FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Team, error)
	ExistsByName(ctx context.Context, orgID string, name string) (bool, error)
	Update(ctx context.Context, tm *Team) error
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

func (r *repository) Create(ctx context.Context, tm *Team) error {
	return r.db.WithContext(ctx).Create(tm).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, orgID string) ([]Team, error) {
	var tms []Team
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("name ASC").
		Find(&tms).Error
	return tms, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Team, error) {
	var tm Team
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		First(&tm, "id = ?", id).Error
	return &tm, err
}

func (r *repository) ExistsByName(ctx context.Context, orgID string, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Team{}).
		Scopes(tenant.Scope(orgID)).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, tm *Team) error {
	return r.db.WithContext(ctx).Save(tm).Error
}

func (r *repository) Delete(ctx context.Context, orgID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Delete(&Team{}, "id = ?", id).Error
}
