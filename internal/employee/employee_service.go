package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "krishr/internal/employee/errors"
	"krishr/internal/events"
	"krishr/internal/messaging/kafka"
	"krishr/internal/shared/contextutil"
	"krishr/internal/shared/counter"
	"krishr/internal/shared/money"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(orgID string) string {
	return EmployeeOptionsKeyPrefix + orgID
}

// LeaveBalanceSeeder creates the per-plan leave balances a new employee
// needs before any leave application can reference them. Implemented by the
// leave package so onboarding can seed inside its own transaction.
type LeaveBalanceSeeder interface {
	SeedBalancesForEmployee(ctx context.Context, tx *sql.Tx, orgID, employeeID string) error
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Onboard(ctx context.Context, orgID string, req OnboardEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, orgID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, orgID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, orgID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, orgID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, orgID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	seeder  LeaveBalanceSeeder
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	seeder LeaveBalanceSeeder,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		seeder:  seeder,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Onboard(
	ctx context.Context,
	orgID string,
	req OnboardEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("onboard employee requested",
		zap.String("request_id", rid),
		zap.String("organization_id", orgID),
		zap.String("email", req.Email),
	)

	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidOrganizationID
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		s.logger.Warn("onboard employee invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	basicSalary, err := money.Parse(req.BasicSalary)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("onboard employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsByEmail(ctx, orgID, req.Email)
	if err != nil {
		s.logger.Error("onboard employee email check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeEmailTaken
	}

	nextVal, err := s.counter.GetNextValue(ctx, orgID, "employee_number")
	if err != nil {
		s.logger.Error("onboard employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tempPassword, err := generateTempPassword(12)
	if err != nil {
		return EmployeeResponse{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = "EMPLOYEE"
	}

	empl := &Employee{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		EmployeeNumber: fmt.Sprintf("EMP-%06d", nextVal),
		Role:           role,
		Status:         StatusActive,
		PasswordHash:   string(hash),
		DepartmentID:   uuidPtr(req.DepartmentID),
		TeamID:         uuidPtr(req.TeamID),
		BranchID:       uuidPtr(req.BranchID),
		ClientID:       uuidPtr(req.ClientID),
		HireDate:       hireDate,
		BasicSalary:    basicSalary,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("onboard employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Leave balances must exist before any application can reference them,
	// so seeding happens in the onboarding transaction, not async.
	if s.seeder != nil {
		if err := s.seeder.SeedBalancesForEmployee(ctx, tx, orgID, empl.ID.String()); err != nil {
			s.logger.Error("onboard employee seed leave balances failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if s.outbox != nil {
		outboxRepo := s.outbox.WithTx(tx)

		if err := s.queueWelcomeEmail(ctx, outboxRepo, rid, empl, tempPassword); err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.queueOnboardedEvent(ctx, outboxRepo, rid, empl); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("onboard employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, orgID)

	s.logger.Info("onboard employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) queueWelcomeEmail(
	ctx context.Context,
	outboxRepo kafka.OutboxRepository,
	rid string,
	empl *Employee,
	tempPassword string,
) error {
	event := events.EmailRequestedEvent{
		EventType: "email_requested",
		Kind:      "employee_welcome",
		To:        empl.Email,
		Subject:   "Welcome to your organization on Kris HR",
		HTML: fmt.Sprintf(
			"<p>Hello %s,</p><p>Your account has been created. Your employee number is <b>%s</b> and your temporary password is <b>%s</b>. Please change it after your first login.</p>",
			empl.FirstName, empl.EmployeeNumber, tempPassword,
		),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal welcome email event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	return outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) queueOnboardedEvent(
	ctx context.Context,
	outboxRepo kafka.OutboxRepository,
	rid string,
	empl *Employee,
) error {
	event := events.EmployeeOnboardedEvent{
		EventType:      "employee_onboarded",
		RequestID:      rid,
		EmployeeID:     empl.ID.String(),
		OrganizationID: empl.OrganizationID.String(),
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal onboarded event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	return outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeOnboardedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(
	ctx context.Context,
	orgID string,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("organization_id", orgID))
	empls, err := s.repo.FindAllByOrganization(ctx, orgID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, orgID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(orgID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent misses into one query.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByOrganization(ctx, orgID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	orgID, id string,
) (EmployeeResponse, error) {
	empl, err := s.repo.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	orgID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("organization_id", orgID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.FirstName != "" {
		empl.FirstName = req.FirstName
	}
	if req.LastName != "" {
		empl.LastName = req.LastName
	}
	if req.Phone != "" {
		empl.Phone = req.Phone
	}
	if req.Role != "" {
		empl.Role = req.Role
	}
	if req.Status != "" {
		empl.Status = req.Status
	}
	if req.DepartmentID != "" {
		empl.DepartmentID = uuidPtr(req.DepartmentID)
	}
	if req.TeamID != "" {
		empl.TeamID = uuidPtr(req.TeamID)
	}
	if req.BranchID != "" {
		empl.BranchID = uuidPtr(req.BranchID)
	}
	if req.ClientID != "" {
		empl.ClientID = uuidPtr(req.ClientID)
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, orgID)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, orgID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, orgID, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx, orgID)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, orgID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(orgID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func uuidPtr(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		OrganizationID: empl.OrganizationID.String(),
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		Email:          empl.Email,
		Phone:          empl.Phone,
		EmployeeNumber: empl.EmployeeNumber,
		Role:           empl.Role,
		Status:         empl.Status,
		HireDate:       empl.HireDate.Format("2006-01-02"),

		BasicSalary:     money.Format(empl.BasicSalary),
		Housing:         money.Format(empl.Housing),
		Transport:       money.Format(empl.Transport),
		Allowance:       money.Format(empl.Allowance),
		Bonus:           money.Format(empl.Bonus),
		Deduction:       money.Format(empl.Deduction),
		Tax:             money.Format(empl.Tax),
		EmployerPension: money.Format(empl.EmployerPension),
		GrossPay:        money.Format(empl.GrossPay),
		NetPay:          money.Format(empl.NetPay),
	}

	resp.DepartmentID = uuidStrPtr(empl.DepartmentID)
	resp.TeamID = uuidStrPtr(empl.TeamID)
	resp.BranchID = uuidStrPtr(empl.BranchID)
	resp.ClientID = uuidStrPtr(empl.ClientID)

	return resp
}

func uuidStrPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(empls))
	for i, empl := range empls {
		resp[i] = mapToResponse(empl)
	}
	return resp
}
