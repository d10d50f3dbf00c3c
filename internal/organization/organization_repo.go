package organization

import (
	"context"
	"database/sql"

	orgerrors "krishr/internal/organization/errors"
	"krishr/internal/shared/connection"

	"gorm.io/gorm"
)

// UniqueField enumerates the columns uniqueness checks may run against.
// Dispatch goes through this typed table instead of indexing a column name
// out of request data.
type UniqueField string

const (
	UniqueFieldName   UniqueField = "name"
	UniqueFieldEmail  UniqueField = "email"
	UniqueFieldKrisID UniqueField = "kris_id"
)

var uniqueColumns = map[UniqueField]string{
	UniqueFieldName:   "name",
	UniqueFieldEmail:  "email",
	UniqueFieldKrisID: "kris_id",
}

//go:generate mockgen -source=organization_repo.go -destination=mock/organization_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id string) (*Organization, error)
	FindByKrisID(ctx context.Context, krisID string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	ExistsByField(ctx context.Context, field UniqueField, value string) (bool, error)
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

func (r *repository) Create(ctx context.Context, org *Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error
	return &org, err
}

func (r *repository) FindByKrisID(ctx context.Context, krisID string) (*Organization, error) {
	var org Organization
	err := r.db.WithContext(ctx).First(&org, "kris_id = ?", krisID).Error
	return &org, err
}

func (r *repository) Update(ctx context.Context, org *Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *repository) ExistsByField(ctx context.Context, field UniqueField, value string) (bool, error) {
	column, ok := uniqueColumns[field]
	if !ok {
		return false, orgerrors.ErrUnknownUniqueField
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&Organization{}).
		Where(column+" = ?", value).
		Count(&count).Error
	return count > 0, err
}
