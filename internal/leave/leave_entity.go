package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusDeclined = "DECLINED"
)

// Leave is an organization-level leave policy. Every employee of the
// organization gets an EmployeeLeave balance row for it.
type Leave struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_org_name"`
	Name           string    `gorm:"type:varchar(80);not null;uniqueIndex:uq_leave_org_name"`
	Duration       int       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Leave) TableName() string {
	return "leaves"
}

// EmployeeLeave is the remaining-balance ledger row for one
// (employee, leave plan) pair. It must exist before an application
// can reference the pair.
type EmployeeLeave struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_leave"`
	LeaveID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_leave"`
	LeaveName         string    `gorm:"type:varchar(80);not null"`
	RemainingDuration int       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmployeeLeave) TableName() string {
	return "employee_leaves"
}

type LeaveApplication struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveName      string    `gorm:"type:varchar(80);not null"`
	StartDate      time.Time `gorm:"type:date;not null"`
	EndDate        time.Time `gorm:"type:date;not null"`
	Duration       int       `gorm:"not null"`
	Reason         string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// Routing rows. One of each is written per application so the team,
// branch, and department approval queues all see the same request.
type TeamLeaveRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ApplicationID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null"`
	TeamID         *uuid.UUID `gorm:"type:uuid;index"`
	Decision       string     `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TeamLeaveRequest) TableName() string {
	return "team_leave_requests"
}

type BranchLeaveRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ApplicationID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null"`
	BranchID       *uuid.UUID `gorm:"type:uuid;index"`
	Decision       string     `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BranchLeaveRequest) TableName() string {
	return "branch_leave_requests"
}

type DeptLeaveRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ApplicationID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	Decision       string     `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DeptLeaveRequest) TableName() string {
	return "dept_leave_requests"
}
