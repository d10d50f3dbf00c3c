package department

import (
	"context"
	"database/sql"

	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAllByOrganization(ctx context.Context, orgID string) ([]Department, error)
	FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Department, error)
	ExistsByName(ctx context.Context, orgID string, name string) (bool, error)
	Update(ctx context.Context, dept *Department) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, orgID string) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) ExistsByName(ctx context.Context, orgID string, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(orgID)).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, orgID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Delete(&Department{}, "id = ?", id).Error
}
