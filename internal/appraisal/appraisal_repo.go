package appraisal

import (
	"context"
	"database/sql"

	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=appraisal_repo.go -destination=mock/appraisal_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, appraisal *Appraisal) error
	FindByID(ctx context.Context, orgID, id string) (*Appraisal, error)
	FindAllByOrganization(ctx context.Context, orgID string) ([]Appraisal, error)

	ListEmployeeIDs(ctx context.Context, orgID string) ([]uuid.UUID, error)
	CreateEmployeeAppraisals(ctx context.Context, rows []EmployeeAppraisal) error
	FindEmployeeAppraisal(ctx context.Context, orgID, appraisalID, employeeID string) (*EmployeeAppraisal, error)
	ListEmployeeAppraisals(ctx context.Context, orgID, appraisalID string) ([]EmployeeAppraisal, error)
	MarkSubmitted(ctx context.Context, employeeAppraisal *EmployeeAppraisal) error

	ListQuestionIDs(ctx context.Context, appraisalID string) ([]uuid.UUID, error)
	SaveResponses(ctx context.Context, responses []AppraisalResponse) error
	ListResponses(ctx context.Context, employeeAppraisalID string) ([]AppraisalResponse, error)
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

func (r *repository) Create(ctx context.Context, appraisal *Appraisal) error {
	return r.db.WithContext(ctx).Create(appraisal).Error
}

func (r *repository) FindByID(ctx context.Context, orgID, id string) (*Appraisal, error) {
	var appraisal Appraisal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Take(&appraisal).Error
	if err != nil {
		return nil, err
	}
	return &appraisal, nil
}

func (r *repository) FindAllByOrganization(ctx context.Context, orgID string) ([]Appraisal, error) {
	var appraisals []Appraisal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("created_at DESC").
		Find(&appraisals).Error
	return appraisals, err
}

func (r *repository) ListEmployeeIDs(ctx context.Context, orgID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("organization_id = ? AND deleted_at IS NULL", orgID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) CreateEmployeeAppraisals(ctx context.Context, rows []EmployeeAppraisal) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindEmployeeAppraisal(ctx context.Context, orgID, appraisalID, employeeID string) (*EmployeeAppraisal, error) {
	var row EmployeeAppraisal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("appraisal_id = ? AND employee_id = ?", appraisalID, employeeID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListEmployeeAppraisals(ctx context.Context, orgID, appraisalID string) ([]EmployeeAppraisal, error) {
	var rows []EmployeeAppraisal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("appraisal_id = ?", appraisalID).
		Find(&rows).Error
	return rows, err
}

func (r *repository) MarkSubmitted(ctx context.Context, employeeAppraisal *EmployeeAppraisal) error {
	return r.db.WithContext(ctx).
		Model(&EmployeeAppraisal{}).
		Where("id = ?", employeeAppraisal.ID).
		Updates(map[string]interface{}{
			"status":       employeeAppraisal.Status,
			"submitted_at": employeeAppraisal.SubmittedAt,
		}).Error
}

func (r *repository) ListQuestionIDs(ctx context.Context, appraisalID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("appraisal_questions AS q").
		Joins("JOIN appraisal_sections s ON s.id = q.section_id").
		Where("s.appraisal_id = ?", appraisalID).
		Pluck("q.id", &ids).Error
	return ids, err
}

func (r *repository) SaveResponses(ctx context.Context, responses []AppraisalResponse) error {
	if len(responses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&responses).Error
}

func (r *repository) ListResponses(ctx context.Context, employeeAppraisalID string) ([]AppraisalResponse, error) {
	var responses []AppraisalResponse
	err := r.db.WithContext(ctx).
		Where("employee_appraisal_id = ?", employeeAppraisalID).
		Find(&responses).Error
	return responses, err
}
