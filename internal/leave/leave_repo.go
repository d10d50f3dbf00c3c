package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	leaveerrors "krishr/internal/leave/errors"
	"krishr/internal/shared/connection"
	"krishr/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRef is the slice of an employee row the leave workflow needs:
// routing targets for the fan-out and contact fields for notification.
type EmployeeRef struct {
	ID           uuid.UUID
	FirstName    string
	Email        string
	TeamID       *uuid.UUID
	BranchID     *uuid.UUID
	DepartmentID *uuid.UUID
}

// QueueEntry is one row of an approval queue, joined with its application.
type QueueEntry struct {
	RequestID     uuid.UUID
	ApplicationID uuid.UUID
	EmployeeID    uuid.UUID
	Decision      string
	LeaveName     string
	StartDate     time.Time
	EndDate       time.Time
	Duration      int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreatePlan(ctx context.Context, plan *Leave) error
	FindPlansByOrganization(ctx context.Context, orgID string) ([]Leave, error)
	FindPlanByName(ctx context.Context, orgID, name string) (*Leave, error)
	ExistsPlanByName(ctx context.Context, orgID, name string) (bool, error)

	ListEmployeeIDs(ctx context.Context, orgID string) ([]uuid.UUID, error)
	FindEmployeeRef(ctx context.Context, orgID, employeeID string) (*EmployeeRef, error)

	CreateBalances(ctx context.Context, balances []EmployeeLeave) error
	FindBalancesByEmployee(ctx context.Context, orgID, employeeID string) ([]EmployeeLeave, error)
	FindBalance(ctx context.Context, orgID, employeeID, leaveName string) (*EmployeeLeave, error)
	DecrementBalance(ctx context.Context, balanceID string, days int) error

	CreateApplication(ctx context.Context, app *LeaveApplication) error
	FindApplicationByID(ctx context.Context, orgID, id string) (*LeaveApplication, error)
	UpdateApplicationStatus(ctx context.Context, applicationID uuid.UUID, status string) error

	CreateTeamRequest(ctx context.Context, req *TeamLeaveRequest) error
	CreateBranchRequest(ctx context.Context, req *BranchLeaveRequest) error
	CreateDeptRequest(ctx context.Context, req *DeptLeaveRequest) error
	FindTeamRequestByID(ctx context.Context, orgID, id string) (*TeamLeaveRequest, error)
	FindBranchRequestByID(ctx context.Context, orgID, id string) (*BranchLeaveRequest, error)
	FindDeptRequestByID(ctx context.Context, orgID, id string) (*DeptLeaveRequest, error)
	UpdateDecisionsByApplication(ctx context.Context, applicationID uuid.UUID, decision string) error

	ListTeamQueue(ctx context.Context, orgID string) ([]QueueEntry, error)
	ListBranchQueue(ctx context.Context, orgID string) ([]QueueEntry, error)
	ListDeptQueue(ctx context.Context, orgID string) ([]QueueEntry, error)
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

func (r *repository) CreatePlan(ctx context.Context, plan *Leave) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *repository) FindPlansByOrganization(ctx context.Context, orgID string) ([]Leave, error) {
	var plans []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

func (r *repository) FindPlanByName(ctx context.Context, orgID, name string) (*Leave, error) {
	var plan Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("name = ?", name).
		Take(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repository) ExistsPlanByName(ctx context.Context, orgID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(orgID)).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListEmployeeIDs(ctx context.Context, orgID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("organization_id = ? AND deleted_at IS NULL", orgID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) FindEmployeeRef(ctx context.Context, orgID, employeeID string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, first_name, email, team_id, branch_id, department_id").
		Where("organization_id = ? AND id = ? AND deleted_at IS NULL", orgID, employeeID).
		Take(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) CreateBalances(ctx context.Context, balances []EmployeeLeave) error {
	if len(balances) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&balances).Error
}

func (r *repository) FindBalancesByEmployee(ctx context.Context, orgID, employeeID string) ([]EmployeeLeave, error) {
	var balances []EmployeeLeave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("employee_id = ?", employeeID).
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindBalance(ctx context.Context, orgID, employeeID, leaveName string) (*EmployeeLeave, error) {
	var balance EmployeeLeave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("employee_id = ? AND leave_name = ?", employeeID, leaveName).
		Take(&balance).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// DecrementBalance subtracts days from the ledger row only when enough
// balance remains, so a race between two approvals cannot drive it negative.
func (r *repository) DecrementBalance(ctx context.Context, balanceID string, days int) error {
	res := r.db.WithContext(ctx).
		Model(&EmployeeLeave{}).
		Where("id = ? AND remaining_duration >= ?", balanceID, days).
		UpdateColumn("remaining_duration", gorm.Expr("remaining_duration - ?", days))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrInsufficientBalance
	}
	return nil
}

func (r *repository) CreateApplication(ctx context.Context, app *LeaveApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repository) FindApplicationByID(ctx context.Context, orgID, id string) (*LeaveApplication, error) {
	var app LeaveApplication
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		Take(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) UpdateApplicationStatus(ctx context.Context, applicationID uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&LeaveApplication{}).
		Where("id = ?", applicationID).
		UpdateColumn("status", status).Error
}

func (r *repository) CreateTeamRequest(ctx context.Context, req *TeamLeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) CreateBranchRequest(ctx context.Context, req *BranchLeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) CreateDeptRequest(ctx context.Context, req *DeptLeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindTeamRequestByID(ctx context.Context, orgID, id string) (*TeamLeaveRequest, error) {
	var req TeamLeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		Take(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindBranchRequestByID(ctx context.Context, orgID, id string) (*BranchLeaveRequest, error) {
	var req BranchLeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		Take(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindDeptRequestByID(ctx context.Context, orgID, id string) (*DeptLeaveRequest, error) {
	var req DeptLeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(orgID)).
		Where("id = ?", id).
		Take(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateDecisionsByApplication mirrors a decision onto all three routing
// rows so no queue keeps showing an already-decided request.
func (r *repository) UpdateDecisionsByApplication(ctx context.Context, applicationID uuid.UUID, decision string) error {
	for _, model := range []interface{}{
		&TeamLeaveRequest{},
		&BranchLeaveRequest{},
		&DeptLeaveRequest{},
	} {
		err := r.db.WithContext(ctx).
			Model(model).
			Where("application_id = ?", applicationID).
			UpdateColumn("decision", decision).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) ListTeamQueue(ctx context.Context, orgID string) ([]QueueEntry, error) {
	return r.listQueue(ctx, orgID, "team_leave_requests")
}

func (r *repository) ListBranchQueue(ctx context.Context, orgID string) ([]QueueEntry, error) {
	return r.listQueue(ctx, orgID, "branch_leave_requests")
}

func (r *repository) ListDeptQueue(ctx context.Context, orgID string) ([]QueueEntry, error) {
	return r.listQueue(ctx, orgID, "dept_leave_requests")
}

func (r *repository) listQueue(ctx context.Context, orgID, table string) ([]QueueEntry, error) {
	var entries []QueueEntry
	err := r.db.WithContext(ctx).
		Table(table+" AS r").
		Select("r.id AS request_id, r.application_id, r.employee_id, r.decision, a.leave_name, a.start_date, a.end_date, a.duration").
		Joins("JOIN leave_applications a ON a.id = r.application_id").
		Where("r.organization_id = ?", orgID).
		Order("r.created_at DESC").
		Scan(&entries).Error
	return entries, err
}

// IsNotFound reports whether err is the record-not-found error of the
// underlying store.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
