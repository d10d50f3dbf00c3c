package employee

import (
	"context"
	"database/sql"

	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByOrganization(ctx context.Context, orgID string) ([]Employee, error)
	FindOptionsByOrganization(ctx context.Context, orgID string) ([]Employee, error)
	FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Employee, error)
	ExistsByEmail(ctx context.Context, orgID string, email string) (bool, error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, orgID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("last_name ASC, first_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptionsByOrganization(ctx context.Context, orgID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "organization_id", "first_name", "last_name", "email", "employee_number", "role", "status", "hire_date").
		Scopes(tenant.Scope(orgID)).
		Order("last_name ASC, first_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) ExistsByEmail(ctx context.Context, orgID string, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(orgID)).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, orgID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Delete(&Employee{}, "id = ?", id).Error
}
