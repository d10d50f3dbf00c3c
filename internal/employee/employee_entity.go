package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusLeave      = "LEAVE"
	StatusSuspended  = "SUSPENDED"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_org_status;uniqueIndex:uq_employee_org_email"`

	FirstName      string `gorm:"type:varchar(80);not null"`
	LastName       string `gorm:"type:varchar(80);not null"`
	Email          string `gorm:"type:varchar(160);not null;uniqueIndex:uq_employee_org_email"`
	Phone          string `gorm:"type:varchar(40)"`
	EmployeeNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	Role           string `gorm:"type:varchar(30);not null;default:'EMPLOYEE'"`
	Status         string `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_employee_org_status"`
	PasswordHash   string `gorm:"type:varchar(120);not null"`

	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	TeamID       *uuid.UUID `gorm:"type:uuid"`
	BranchID     *uuid.UUID `gorm:"type:uuid"`
	ClientID     *uuid.UUID `gorm:"type:uuid"`

	HireDate time.Time `gorm:"type:date;not null"`

	// Payroll scalars, overwritten in place by payroll preview edits.
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
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
