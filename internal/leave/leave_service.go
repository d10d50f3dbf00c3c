package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"krishr/internal/events"
	leaveerrors "krishr/internal/leave/errors"
	"krishr/internal/messaging/kafka"
	"krishr/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Queue names the approval lane a routing record belongs to.
type Queue string

const (
	QueueTeam   Queue = "team"
	QueueBranch Queue = "branch"
	QueueDept   Queue = "department"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CreatePlan(ctx context.Context, orgID string, req CreateLeavePlanRequest) (LeavePlanResponse, error)
	GetPlans(ctx context.Context, orgID string) ([]LeavePlanResponse, error)
	GetBalances(ctx context.Context, orgID, employeeID string) ([]LeaveBalanceResponse, error)
	Apply(ctx context.Context, orgID, employeeID string, req ApplyLeaveRequest) (LeaveApplicationResponse, error)
	GetQueue(ctx context.Context, orgID string, queue Queue) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, orgID string, queue Queue, requestID string) (LeaveApplicationResponse, error)
	Decline(ctx context.Context, orgID string, queue Queue, requestID string) (LeaveApplicationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) CreatePlan(
	ctx context.Context,
	orgID string,
	req CreateLeavePlanRequest,
) (LeavePlanResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave plan requested",
		zap.String("request_id", rid),
		zap.String("organization_id", orgID),
		zap.String("name", req.Name),
	)

	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return LeavePlanResponse{}, leaveerrors.ErrLeavePlanNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave plan begin tx failed", zap.Error(err))
		return LeavePlanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsPlanByName(ctx, orgID, req.Name)
	if err != nil {
		return LeavePlanResponse{}, err
	}
	if taken {
		return LeavePlanResponse{}, leaveerrors.ErrLeavePlanNameTaken
	}

	plan := &Leave{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Name:           req.Name,
		Duration:       req.Duration,
	}
	if err := qtx.CreatePlan(ctx, plan); err != nil {
		s.logger.Error("create leave plan persist failed", zap.Error(err))
		return LeavePlanResponse{}, err
	}

	// Every current employee gets a full balance for the new plan.
	employeeIDs, err := qtx.ListEmployeeIDs(ctx, orgID)
	if err != nil {
		return LeavePlanResponse{}, err
	}
	balances := make([]EmployeeLeave, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		balances = append(balances, EmployeeLeave{
			ID:                uuid.New(),
			OrganizationID:    orgUUID,
			EmployeeID:        employeeID,
			LeaveID:           plan.ID,
			LeaveName:         plan.Name,
			RemainingDuration: plan.Duration,
		})
	}
	if err := qtx.CreateBalances(ctx, balances); err != nil {
		s.logger.Error("create leave plan seed balances failed", zap.Error(err))
		return LeavePlanResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeavePlanResponse{}, err
	}

	s.logger.Info("create leave plan success",
		zap.String("request_id", rid),
		zap.String("leave_id", plan.ID.String()),
		zap.Int("balances_seeded", len(balances)),
	)

	return mapPlanToResponse(*plan), nil
}

func (s *service) GetPlans(ctx context.Context, orgID string) ([]LeavePlanResponse, error) {
	plans, err := s.repo.FindPlansByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeavePlanResponse, len(plans))
	for i, plan := range plans {
		resp[i] = mapPlanToResponse(plan)
	}
	return resp, nil
}

func (s *service) GetBalances(ctx context.Context, orgID, employeeID string) ([]LeaveBalanceResponse, error) {
	balances, err := s.repo.FindBalancesByEmployee(ctx, orgID, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = LeaveBalanceResponse{
			ID:                b.ID.String(),
			EmployeeID:        b.EmployeeID.String(),
			LeaveID:           b.LeaveID.String(),
			LeaveName:         b.LeaveName,
			RemainingDuration: b.RemainingDuration,
		}
	}
	return resp, nil
}

func (s *service) Apply(
	ctx context.Context,
	orgID, employeeID string,
	req ApplyLeaveRequest,
) (LeaveApplicationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("leave application requested",
		zap.String("request_id", rid),
		zap.String("organization_id", orgID),
		zap.String("employee_id", employeeID),
		zap.String("leave_name", req.LeaveName),
	)

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidLeaveDate
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidLeaveDate
	}

	duration := countWeekdays(startDate, endDate)
	if duration == 0 {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave application begin tx failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	plan, err := qtx.FindPlanByName(ctx, orgID, req.LeaveName)
	if err != nil {
		if IsNotFound(err) {
			return LeaveApplicationResponse{}, leaveerrors.ErrLeavePlanNotFound
		}
		return LeaveApplicationResponse{}, err
	}

	balance, err := qtx.FindBalance(ctx, orgID, employeeID, plan.Name)
	if err != nil {
		if IsNotFound(err) {
			return LeaveApplicationResponse{}, leaveerrors.ErrLeaveBalanceNotFound
		}
		return LeaveApplicationResponse{}, err
	}
	if balance.RemainingDuration < duration {
		return LeaveApplicationResponse{}, leaveerrors.ErrInsufficientBalance
	}

	ref, err := qtx.FindEmployeeRef(ctx, orgID, employeeID)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	app := &LeaveApplication{
		ID:             uuid.New(),
		OrganizationID: plan.OrganizationID,
		EmployeeID:     ref.ID,
		LeaveName:      plan.Name,
		StartDate:      startDate,
		EndDate:        endDate,
		Duration:       duration,
		Reason:         req.Reason,
		Status:         StatusPending,
	}
	if err := qtx.CreateApplication(ctx, app); err != nil {
		s.logger.Error("leave application persist failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}

	// Same request lands in all three queues at once.
	if err := qtx.CreateTeamRequest(ctx, &TeamLeaveRequest{
		ID:             uuid.New(),
		OrganizationID: app.OrganizationID,
		ApplicationID:  app.ID,
		EmployeeID:     ref.ID,
		TeamID:         ref.TeamID,
		Decision:       StatusPending,
	}); err != nil {
		return LeaveApplicationResponse{}, err
	}
	if err := qtx.CreateBranchRequest(ctx, &BranchLeaveRequest{
		ID:             uuid.New(),
		OrganizationID: app.OrganizationID,
		ApplicationID:  app.ID,
		EmployeeID:     ref.ID,
		BranchID:       ref.BranchID,
		Decision:       StatusPending,
	}); err != nil {
		return LeaveApplicationResponse{}, err
	}
	if err := qtx.CreateDeptRequest(ctx, &DeptLeaveRequest{
		ID:             uuid.New(),
		OrganizationID: app.OrganizationID,
		ApplicationID:  app.ID,
		EmployeeID:     ref.ID,
		DepartmentID:   ref.DepartmentID,
		Decision:       StatusPending,
	}); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveApplicationResponse{}, err
	}

	s.logger.Info("leave application created",
		zap.String("request_id", rid),
		zap.String("application_id", app.ID.String()),
		zap.Int("duration", duration),
	)

	return mapApplicationToResponse(*app), nil
}

func (s *service) GetQueue(ctx context.Context, orgID string, queue Queue) ([]LeaveRequestResponse, error) {
	var (
		entries []QueueEntry
		err     error
	)
	switch queue {
	case QueueTeam:
		entries, err = s.repo.ListTeamQueue(ctx, orgID)
	case QueueBranch:
		entries, err = s.repo.ListBranchQueue(ctx, orgID)
	case QueueDept:
		entries, err = s.repo.ListDeptQueue(ctx, orgID)
	default:
		return nil, leaveerrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveRequestResponse, len(entries))
	for i, e := range entries {
		resp[i] = LeaveRequestResponse{
			ID:            e.RequestID.String(),
			ApplicationID: e.ApplicationID.String(),
			EmployeeID:    e.EmployeeID.String(),
			LeaveName:     e.LeaveName,
			StartDate:     e.StartDate.Format("2006-01-02"),
			EndDate:       e.EndDate.Format("2006-01-02"),
			Duration:      e.Duration,
			Decision:      e.Decision,
		}
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, orgID string, queue Queue, requestID string) (LeaveApplicationResponse, error) {
	return s.decide(ctx, orgID, queue, requestID, StatusApproved)
}

func (s *service) Decline(ctx context.Context, orgID string, queue Queue, requestID string) (LeaveApplicationResponse, error) {
	return s.decide(ctx, orgID, queue, requestID, StatusDeclined)
}

func (s *service) decide(
	ctx context.Context,
	orgID string,
	queue Queue,
	requestID string,
	decision string,
) (LeaveApplicationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("leave decision requested",
		zap.String("request_id", rid),
		zap.String("queue", string(queue)),
		zap.String("routing_id", requestID),
		zap.String("decision", decision),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave decision begin tx failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	applicationID, err := s.resolveApplicationID(ctx, qtx, orgID, queue, requestID)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	app, err := qtx.FindApplicationByID(ctx, orgID, applicationID.String())
	if err != nil {
		if IsNotFound(err) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}
	if app.Status != StatusPending {
		return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotPending
	}

	// The stored dates are authoritative at decision time, so the
	// decrement uses a freshly recomputed duration rather than the one
	// requested at application time.
	duration := countWeekdays(app.StartDate, app.EndDate)

	if decision == StatusApproved {
		balance, err := qtx.FindBalance(ctx, orgID, app.EmployeeID.String(), app.LeaveName)
		if err != nil {
			if IsNotFound(err) {
				return LeaveApplicationResponse{}, leaveerrors.ErrLeaveBalanceNotFound
			}
			return LeaveApplicationResponse{}, err
		}
		if err := qtx.DecrementBalance(ctx, balance.ID.String(), duration); err != nil {
			return LeaveApplicationResponse{}, err
		}
	}

	if err := qtx.UpdateApplicationStatus(ctx, app.ID, decision); err != nil {
		return LeaveApplicationResponse{}, err
	}
	if err := qtx.UpdateDecisionsByApplication(ctx, app.ID, decision); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if s.outbox != nil {
		if err := s.queueDecisionEmail(ctx, qtx, tx, rid, orgID, app, decision, duration); err != nil {
			return LeaveApplicationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveApplicationResponse{}, err
	}

	app.Status = decision
	app.Duration = duration

	s.logger.Info("leave decision applied",
		zap.String("request_id", rid),
		zap.String("application_id", app.ID.String()),
		zap.String("decision", decision),
	)

	return mapApplicationToResponse(*app), nil
}

func (s *service) resolveApplicationID(
	ctx context.Context,
	qtx Repository,
	orgID string,
	queue Queue,
	requestID string,
) (uuid.UUID, error) {
	switch queue {
	case QueueTeam:
		req, err := qtx.FindTeamRequestByID(ctx, orgID, requestID)
		if err != nil {
			if IsNotFound(err) {
				return uuid.Nil, leaveerrors.ErrRequestNotFound
			}
			return uuid.Nil, err
		}
		return req.ApplicationID, nil
	case QueueBranch:
		req, err := qtx.FindBranchRequestByID(ctx, orgID, requestID)
		if err != nil {
			if IsNotFound(err) {
				return uuid.Nil, leaveerrors.ErrRequestNotFound
			}
			return uuid.Nil, err
		}
		return req.ApplicationID, nil
	case QueueDept:
		req, err := qtx.FindDeptRequestByID(ctx, orgID, requestID)
		if err != nil {
			if IsNotFound(err) {
				return uuid.Nil, leaveerrors.ErrRequestNotFound
			}
			return uuid.Nil, err
		}
		return req.ApplicationID, nil
	default:
		return uuid.Nil, leaveerrors.ErrRequestNotFound
	}
}

// queueDecisionEmail writes the notification into the outbox inside the
// decision transaction. Delivery happens after commit, so a mail outage
// cannot hold the transaction open.
func (s *service) queueDecisionEmail(
	ctx context.Context,
	qtx Repository,
	tx *sql.Tx,
	rid, orgID string,
	app *LeaveApplication,
	decision string,
	duration int,
) error {
	ref, err := qtx.FindEmployeeRef(ctx, orgID, app.EmployeeID.String())
	if err != nil {
		return err
	}

	var subject, body string
	if decision == StatusApproved {
		subject = fmt.Sprintf("Your %s leave has been approved", app.LeaveName)
		body = fmt.Sprintf(
			"<p>Hello %s,</p><p>Your %s leave from %s to %s (%d weekdays) has been approved.</p>",
			ref.FirstName, app.LeaveName,
			app.StartDate.Format("2006-01-02"), app.EndDate.Format("2006-01-02"), duration,
		)
	} else {
		subject = fmt.Sprintf("Your %s leave has been declined", app.LeaveName)
		body = fmt.Sprintf(
			"<p>Hello %s,</p><p>Your %s leave from %s to %s was declined.</p>",
			ref.FirstName, app.LeaveName,
			app.StartDate.Format("2006-01-02"), app.EndDate.Format("2006-01-02"),
		)
	}

	event := events.EmailRequestedEvent{
		EventType:  "email_requested",
		Kind:       "leave_decision",
		To:         ref.Email,
		Subject:    subject,
		HTML:       body,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_application",
		AggregateID:   app.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapPlanToResponse(plan Leave) LeavePlanResponse {
	return LeavePlanResponse{
		ID:             plan.ID.String(),
		OrganizationID: plan.OrganizationID.String(),
		Name:           plan.Name,
		Duration:       plan.Duration,
	}
}

func mapApplicationToResponse(app LeaveApplication) LeaveApplicationResponse {
	return LeaveApplicationResponse{
		ID:             app.ID.String(),
		OrganizationID: app.OrganizationID.String(),
		EmployeeID:     app.EmployeeID.String(),
		LeaveName:      app.LeaveName,
		StartDate:      app.StartDate.Format("2006-01-02"),
		EndDate:        app.EndDate.Format("2006-01-02"),
		Duration:       app.Duration,
		Reason:         app.Reason,
		Status:         app.Status,
	}
}
