package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// PayrollPreview is a named, editable payroll run. Employees included in
// the run are tracked through EmployeePayrollPreview join rows; their
// monetary figures live on the employee rows until approval freezes them.
type PayrollPreview struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_preview_org_name"`
	Name           string    `gorm:"type:varchar(120);not null;uniqueIndex:uq_preview_org_name"`
	Status         string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedBy      string    `gorm:"type:varchar(160);not null"`

	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayrollPreview) TableName() string {
	return "payroll_previews"
}

type EmployeePayrollPreview struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PayrollPreviewID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_preview_employee"`
	EmployeeID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_preview_employee"`

	CreatedAt time.Time
}

func (EmployeePayrollPreview) TableName() string {
	return "employee_payroll_previews"
}

// OrganizationPayroll is the immutable record an approval produces.
type OrganizationPayroll struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PayrollPreviewID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(120);not null"`

	TotalTaxes           decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalGrossPay        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalBonus           decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalDeduction       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalEmployerPension decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalNetPay          decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`

	ApprovedBy string    `gorm:"type:varchar(160);not null"`
	ApprovedAt time.Time `gorm:"not null"`

	Employees []OrganizationPayrollEmployee `gorm:"foreignKey:OrganizationPayrollID"`

	CreatedAt time.Time
}

func (OrganizationPayroll) TableName() string {
	return "organization_payrolls"
}

// OrganizationPayrollEmployee is one employee's frozen pay line, copied
// field by field at approval time.
type OrganizationPayrollEmployee struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationPayrollID uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID            uuid.UUID `gorm:"type:uuid;not null"`

	FirstName string `gorm:"type:varchar(80);not null"`
	LastName  string `gorm:"type:varchar(80);not null"`
	Email     string `gorm:"type:varchar(160);not null"`

	BasicSalary     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Housing         decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Transport       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Allowance       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Bonus           decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Deduction       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Tax             decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	EmployerPension decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	GrossPay        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	NetPay          decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`

	CreatedAt time.Time
}

func (OrganizationPayrollEmployee) TableName() string {
	return "organization_payroll_employees"
}
