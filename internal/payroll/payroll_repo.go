package payroll

import (
	"context"
	"database/sql"

	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmployeePayLine is the payroll projection of an employee row: identity
// plus the monetary scalars a run needs.
type EmployeePayLine struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string

	BasicSalary     decimal.Decimal
	Housing         decimal.Decimal
	Transport       decimal.Decimal
	Allowance       decimal.Decimal
	Bonus           decimal.Decimal
	Deduction       decimal.Decimal
	Tax             decimal.Decimal
	EmployerPension decimal.Decimal
	GrossPay        decimal.Decimal
	NetPay          decimal.Decimal
}

const payLineColumns = "id, first_name, last_name, email, basic_salary, housing, transport, allowance, bonus, deduction, tax, employer_pension, gross_pay, net_pay"

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreatePreview(ctx context.Context, preview *PayrollPreview) error
	FindPreviewByID(ctx context.Context, orgID, id string) (*PayrollPreview, error)
	ListPreviews(ctx context.Context, orgID string) ([]PayrollPreview, error)
	ExistsPreviewByName(ctx context.Context, orgID, name string) (bool, error)
	UpdatePreviewStatus(ctx context.Context, previewID uuid.UUID, status string) error

	ListPayrollEligibleEmployees(ctx context.Context, orgID string) ([]EmployeePayLine, error)
	ListPreviewEmployees(ctx context.Context, orgID, previewID string) ([]EmployeePayLine, error)
	FindPayLine(ctx context.Context, orgID, employeeID string) (*EmployeePayLine, error)

	CreatePreviewEmployees(ctx context.Context, rows []EmployeePayrollPreview) error
	ExistsPreviewEmployee(ctx context.Context, previewID, employeeID string) (bool, error)
	RemovePreviewEmployee(ctx context.Context, previewID, employeeID string) (int64, error)

	UpdateEmployeePayFields(ctx context.Context, orgID, employeeID string, line EmployeePayLine) error

	CreateOrganizationPayroll(ctx context.Context, payroll *OrganizationPayroll) error
	ListOrganizationPayrolls(ctx context.Context, orgID string) ([]OrganizationPayroll, error)
	FindOrganizationPayrollByID(ctx context.Context, orgID, id string) (*OrganizationPayroll, error)
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

func (r *repository) CreatePreview(ctx context.Context, preview *PayrollPreview) error {
	return r.db.WithContext(ctx).Create(preview).Error
}

func (r *repository) FindPreviewByID(ctx context.Context, orgID, id string) (*PayrollPreview, error) {
	var preview PayrollPreview
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		Take(&preview).Error
	if err != nil {
		return nil, err
	}
	return &preview, nil
}

func (r *repository) ListPreviews(ctx context.Context, orgID string) ([]PayrollPreview, error) {
	var previews []PayrollPreview
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("created_at DESC").
		Find(&previews).Error
	return previews, err
}

func (r *repository) ExistsPreviewByName(ctx context.Context, orgID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollPreview{}).
		Scopes(tenant.Scope(orgID)).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdatePreviewStatus(ctx context.Context, previewID uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&PayrollPreview{}).
		Where("id = ?", previewID).
		UpdateColumn("status", status).Error
}

// ListPayrollEligibleEmployees returns the employees a new preview run
// covers. Only ACTIVE and LEAVE employees are eligible; every other
// status is excluded unconditionally.
func (r *repository) ListPayrollEligibleEmployees(ctx context.Context, orgID string) ([]EmployeePayLine, error) {
	var lines []EmployeePayLine
	err := r.db.WithContext(ctx).
		Table("employees").
		Select(payLineColumns).
		Where("organization_id = ? AND status IN ? AND deleted_at IS NULL", orgID, []string{"ACTIVE", "LEAVE"}).
		Scan(&lines).Error
	return lines, err
}

func (r *repository) ListPreviewEmployees(ctx context.Context, orgID, previewID string) ([]EmployeePayLine, error) {
	var lines []EmployeePayLine
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select("e.id, e.first_name, e.last_name, e.email, e.basic_salary, e.housing, e.transport, e.allowance, e.bonus, e.deduction, e.tax, e.employer_pension, e.gross_pay, e.net_pay").
		Joins("JOIN employee_payroll_previews p ON p.employee_id = e.id").
		Where("p.payroll_preview_id = ? AND e.organization_id = ?", previewID, orgID).
		Scan(&lines).Error
	return lines, err
}

func (r *repository) FindPayLine(ctx context.Context, orgID, employeeID string) (*EmployeePayLine, error) {
	var line EmployeePayLine
	err := r.db.WithContext(ctx).
		Table("employees").
		Select(payLineColumns).
		Where("organization_id = ? AND id = ? AND deleted_at IS NULL", orgID, employeeID).
		Take(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *repository) CreatePreviewEmployees(ctx context.Context, rows []EmployeePayrollPreview) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) ExistsPreviewEmployee(ctx context.Context, previewID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeePayrollPreview{}).
		Where("payroll_preview_id = ? AND employee_id = ?", previewID, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) RemovePreviewEmployee(ctx context.Context, previewID, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("payroll_preview_id = ? AND employee_id = ?", previewID, employeeID).
		Delete(&EmployeePayrollPreview{})
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateEmployeePayFields(ctx context.Context, orgID, employeeID string, line EmployeePayLine) error {
	return r.db.WithContext(ctx).
		Table("employees").
		Where("organization_id = ? AND id = ?", orgID, employeeID).
		Updates(map[string]interface{}{
			"basic_salary":     line.BasicSalary,
			"housing":          line.Housing,
			"transport":        line.Transport,
			"allowance":        line.Allowance,
			"bonus":            line.Bonus,
			"deduction":        line.Deduction,
			"tax":              line.Tax,
			"employer_pension": line.EmployerPension,
			"gross_pay":        line.GrossPay,
			"net_pay":          line.NetPay,
		}).Error
}

func (r *repository) CreateOrganizationPayroll(ctx context.Context, payroll *OrganizationPayroll) error {
	return r.db.WithContext(ctx).Create(payroll).Error
}

func (r *repository) ListOrganizationPayrolls(ctx context.Context, orgID string) ([]OrganizationPayroll, error) {
	var payrolls []OrganizationPayroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("approved_at DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindOrganizationPayrollByID(ctx context.Context, orgID, id string) (*OrganizationPayroll, error) {
	var payroll OrganizationPayroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		Preload("Employees").
		Take(&payroll).Error
	if err != nil {
		return nil, err
	}
	return &payroll, nil
}
