package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"krishr/internal/employee"
	employeeerrors "krishr/internal/employee/errors"
	"krishr/internal/events"
	"krishr/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepository struct {
	withTxFn                    func(tx *sql.Tx) employee.Repository
	createFn                    func(ctx context.Context, empl *employee.Employee) error
	findAllByOrganizationFn     func(ctx context.Context, orgID string) ([]employee.Employee, error)
	findOptionsByOrganizationFn func(ctx context.Context, orgID string) ([]employee.Employee, error)
	findByIDAndOrganizationFn   func(ctx context.Context, orgID, id string) (*employee.Employee, error)
	existsByEmailFn             func(ctx context.Context, orgID, email string) (bool, error)
	updateFn                    func(ctx context.Context, empl *employee.Employee) error
	deleteFn                    func(ctx context.Context, orgID, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAllByOrganization(ctx context.Context, orgID string) ([]employee.Employee, error) {
	if f.findAllByOrganizationFn != nil {
		return f.findAllByOrganizationFn(ctx, orgID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindOptionsByOrganization(ctx context.Context, orgID string) ([]employee.Employee, error) {
	if f.findOptionsByOrganizationFn != nil {
		return f.findOptionsByOrganizationFn(ctx, orgID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndOrganization(ctx context.Context, orgID, id string) (*employee.Employee, error) {
	if f.findByIDAndOrganizationFn != nil {
		return f.findByIDAndOrganizationFn(ctx, orgID, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) ExistsByEmail(ctx context.Context, orgID, email string) (bool, error) {
	if f.existsByEmailFn != nil {
		return f.existsByEmailFn(ctx, orgID, email)
	}
	return false, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, orgID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, orgID, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, organizationID, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, organizationID, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, organizationID, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeSeeder struct {
	seedFn func(ctx context.Context, tx *sql.Tx, orgID, employeeID string) error
	calls  int
}

func (f *fakeSeeder) SeedBalancesForEmployee(ctx context.Context, tx *sql.Tx, orgID, employeeID string) error {
	f.calls++
	if f.seedFn != nil {
		return f.seedFn(ctx, tx, orgID, employeeID)
	}
	return nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
	counter *fakeCounterRepository
	outbox  *fakeOutboxRepository
	seeder  *fakeSeeder
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{}
	outboxRepo := &fakeOutboxRepository{}
	seeder := &fakeSeeder{}
	svc := employee.NewService(db, repo, counterRepo, outboxRepo, seeder, nil)

	return &employeeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		seeder:  seeder,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Onboard(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	req := employee.OnboardEmployeeRequest{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada.obi@example.com",
		HireDate:    "2026-02-01",
		BasicSalary: "250000.00",
	}

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.counter.getNextValueFn = func(ctx context.Context, oid, counterType string) (int64, error) {
			assert.Equal(t, orgID, oid)
			assert.Equal(t, "employee_number", counterType)
			return 42, nil
		}

		var created *employee.Employee
		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			created = empl
			return nil
		}

		resp, err := deps.service.Onboard(ctx, orgID, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
		assert.Equal(t, employee.StatusActive, resp.Status)
		assert.Equal(t, "250000.00", resp.BasicSalary)
		assert.Equal(t, "EMPLOYEE", resp.Role)
		assert.Equal(t, 1, deps.seeder.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		assert.NotNil(t, created)
		assert.NotEmpty(t, created.PasswordHash)
		assert.NotEqual(t, "", created.PasswordHash)
		assert.NoError(t, bcryptCompareSomething(created.PasswordHash))
	})

	t.Run("queues welcome email and lifecycle event in the same tx", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		_, err := deps.service.Onboard(ctx, orgID, req)
		assert.NoError(t, err)

		assert.Len(t, deps.outbox.created, 2)
		assert.Equal(t, events.EmailRequestedTopic, deps.outbox.created[0].Topic)
		assert.Equal(t, events.EmployeeOnboardedTopic, deps.outbox.created[1].Topic)

		var email events.EmailRequestedEvent
		assert.NoError(t, json.Unmarshal(deps.outbox.created[0].Payload, &email))
		assert.Equal(t, req.Email, email.To)
		assert.Contains(t, email.HTML, "EMP-")
	})

	t.Run("negative email already taken", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.existsByEmailFn = func(ctx context.Context, oid, email string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Onboard(ctx, orgID, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeEmailTaken)
		assert.Equal(t, 0, deps.seeder.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid hire date", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		bad := req
		bad.HireDate = "01/02/2026"

		_, err := deps.service.Onboard(ctx, orgID, bad)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("negative non numeric salary", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		bad := req
		bad.BasicSalary = "a-lot"

		_, err := deps.service.Onboard(ctx, orgID, bad)

		assert.Error(t, err)
	})

	t.Run("negative seeder failure rolls everything back", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.seeder.seedFn = func(ctx context.Context, tx *sql.Tx, oid, eid string) error {
			return errors.New("seed failed")
		}

		_, err := deps.service.Onboard(ctx, orgID, req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

// bcryptCompareSomething checks the stored hash is a real bcrypt hash
// without knowing the generated password.
func bcryptCompareSomething(hash string) error {
	_, err := bcrypt.Cost([]byte(hash))
	return err
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.repo.findByIDAndOrganizationFn = func(ctx context.Context, oid, eid string) (*employee.Employee, error) {
			assert.Equal(t, orgID, oid)
			return &employee.Employee{
				ID:             id,
				OrganizationID: uuid.MustParse(orgID),
				FirstName:      "Ada",
				Status:         employee.StatusActive,
			}, nil
		}

		resp, err := deps.service.GetByID(ctx, orgID, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, "Ada", resp.FirstName)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("success partial update", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		id := uuid.New()
		deps.repo.findByIDAndOrganizationFn = func(ctx context.Context, oid, eid string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:             id,
				OrganizationID: uuid.MustParse(orgID),
				FirstName:      "Ada",
				LastName:       "Obi",
				Status:         employee.StatusActive,
			}, nil
		}

		deps.repo.updateFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, "Adaeze", empl.FirstName)
			assert.Equal(t, "Obi", empl.LastName)
			assert.Equal(t, employee.StatusSuspended, empl.Status)
			return nil
		}

		resp, err := deps.service.Update(ctx, orgID, id.String(), employee.UpdateEmployeeRequest{
			FirstName: "Adaeze",
			Status:    employee.StatusSuspended,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Adaeze", resp.FirstName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
