package client

import (
	"context"
	"database/sql"

	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cl *Client) error
	FindAllByOrganization(ctx context.Context, orgID string) ([]Client, error)
	FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Client, error)
	ExistsByName(ctx context.Context, orgID string, name string) (bool, error)
	Update(ctx context.Context, cl *Client) error
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

func (r *repository) Create(ctx context.Context, cl *Client) error {
	return r.db.WithContext(ctx).Create(cl).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, orgID string) ([]Client, error) {
	var cls []Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("name ASC").
		Find(&cls).Error
	return cls, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, orgID string, id string) (*Client, error) {
	var cl Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		First(&cl, "id = ?", id).Error
	return &cl, err
}

func (r *repository) ExistsByName(ctx context.Context, orgID string, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Client{}).
		Scopes(tenant.Scope(orgID)).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, cl *Client) error {
	return r.db.WithContext(ctx).Save(cl).Error
}

func (r *repository) Delete(ctx context.Context, orgID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Delete(&Client{}, "id = ?", id).Error
}
