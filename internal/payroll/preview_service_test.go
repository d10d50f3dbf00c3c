package payroll_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"krishr/internal/messaging/kafka"
	"krishr/internal/payroll"
	payrollerrors "krishr/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	withTxFn func(tx *sql.Tx) payroll.Repository

	createPreviewFn       func(ctx context.Context, preview *payroll.PayrollPreview) error
	findPreviewByIDFn     func(ctx context.Context, orgID, id string) (*payroll.PayrollPreview, error)
	listPreviewsFn        func(ctx context.Context, orgID string) ([]payroll.PayrollPreview, error)
	existsPreviewByNameFn func(ctx context.Context, orgID, name string) (bool, error)
	updatePreviewStatusFn func(ctx context.Context, previewID uuid.UUID, status string) error

	listPayrollEligibleEmployeesFn func(ctx context.Context, orgID string) ([]payroll.EmployeePayLine, error)
	listPreviewEmployeesFn         func(ctx context.Context, orgID, previewID string) ([]payroll.EmployeePayLine, error)
	findPayLineFn                  func(ctx context.Context, orgID, employeeID string) (*payroll.EmployeePayLine, error)

	createPreviewEmployeesFn func(ctx context.Context, rows []payroll.EmployeePayrollPreview) error
	existsPreviewEmployeeFn  func(ctx context.Context, previewID, employeeID string) (bool, error)
	removePreviewEmployeeFn  func(ctx context.Context, previewID, employeeID string) (int64, error)

	updateEmployeePayFieldsFn func(ctx context.Context, orgID, employeeID string, line payroll.EmployeePayLine) error

	createOrganizationPayrollFn   func(ctx context.Context, p *payroll.OrganizationPayroll) error
	listOrganizationPayrollsFn    func(ctx context.Context, orgID string) ([]payroll.OrganizationPayroll, error)
	findOrganizationPayrollByIDFn func(ctx context.Context, orgID, id string) (*payroll.OrganizationPayroll, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) CreatePreview(ctx context.Context, preview *payroll.PayrollPreview) error {
	if f.createPreviewFn != nil {
		return f.createPreviewFn(ctx, preview)
	}
	return nil
}

func (f *fakePayrollRepository) FindPreviewByID(ctx context.Context, orgID, id string) (*payroll.PayrollPreview, error) {
	if f.findPreviewByIDFn != nil {
		return f.findPreviewByIDFn(ctx, orgID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) ListPreviews(ctx context.Context, orgID string) ([]payroll.PayrollPreview, error) {
	if f.listPreviewsFn != nil {
		return f.listPreviewsFn(ctx, orgID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) ExistsPreviewByName(ctx context.Context, orgID, name string) (bool, error) {
	if f.existsPreviewByNameFn != nil {
		return f.existsPreviewByNameFn(ctx, orgID, name)
	}
	return false, nil
}

func (f *fakePayrollRepository) UpdatePreviewStatus(ctx context.Context, previewID uuid.UUID, status string) error {
	if f.updatePreviewStatusFn != nil {
		return f.updatePreviewStatusFn(ctx, previewID, status)
	}
	return nil
}

func (f *fakePayrollRepository) ListPayrollEligibleEmployees(ctx context.Context, orgID string) ([]payroll.EmployeePayLine, error) {
	if f.listPayrollEligibleEmployeesFn != nil {
		return f.listPayrollEligibleEmployeesFn(ctx, orgID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) ListPreviewEmployees(ctx context.Context, orgID, previewID string) ([]payroll.EmployeePayLine, error) {
	if f.listPreviewEmployeesFn != nil {
		return f.listPreviewEmployeesFn(ctx, orgID, previewID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindPayLine(ctx context.Context, orgID, employeeID string) (*payroll.EmployeePayLine, error) {
	if f.findPayLineFn != nil {
		return f.findPayLineFn(ctx, orgID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) CreatePreviewEmployees(ctx context.Context, rows []payroll.EmployeePayrollPreview) error {
	if f.createPreviewEmployeesFn != nil {
		return f.createPreviewEmployeesFn(ctx, rows)
	}
	return nil
}

func (f *fakePayrollRepository) ExistsPreviewEmployee(ctx context.Context, previewID, employeeID string) (bool, error) {
	if f.existsPreviewEmployeeFn != nil {
		return f.existsPreviewEmployeeFn(ctx, previewID, employeeID)
	}
	return false, nil
}

func (f *fakePayrollRepository) RemovePreviewEmployee(ctx context.Context, previewID, employeeID string) (int64, error) {
	if f.removePreviewEmployeeFn != nil {
		return f.removePreviewEmployeeFn(ctx, previewID, employeeID)
	}
	return 0, nil
}

func (f *fakePayrollRepository) UpdateEmployeePayFields(ctx context.Context, orgID, employeeID string, line payroll.EmployeePayLine) error {
	if f.updateEmployeePayFieldsFn != nil {
		return f.updateEmployeePayFieldsFn(ctx, orgID, employeeID, line)
	}
	return nil
}

func (f *fakePayrollRepository) CreateOrganizationPayroll(ctx context.Context, p *payroll.OrganizationPayroll) error {
	if f.createOrganizationPayrollFn != nil {
		return f.createOrganizationPayrollFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) ListOrganizationPayrolls(ctx context.Context, orgID string) ([]payroll.OrganizationPayroll, error) {
	if f.listOrganizationPayrollsFn != nil {
		return f.listOrganizationPayrollsFn(ctx, orgID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindOrganizationPayrollByID(ctx context.Context, orgID, id string) (*payroll.OrganizationPayroll, error) {
	if f.findOrganizationPayrollByIDFn != nil {
		return f.findOrganizationPayrollByIDFn(ctx, orgID, id)
	}
	return nil, gorm.ErrRecordNotFound
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

type payrollDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	preview payroll.PreviewService
	approve payroll.ApproveService
	repo    *fakePayrollRepository
	outbox  *fakeOutboxRepository
}

func setupPayrollTest(t *testing.T) *payrollDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayrollRepository{}
	outboxRepo := &fakeOutboxRepository{}

	return &payrollDeps{
		db:      db,
		sqlMock: sqlMock,
		preview: payroll.NewPreviewService(db, repo),
		approve: payroll.NewApproveService(db, repo, outboxRepo),
		repo:    repo,
		outbox:  outboxRepo,
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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pendingPreview(orgID string) *payroll.PayrollPreview {
	return &payroll.PayrollPreview{
		ID:             uuid.New(),
		OrganizationID: uuid.MustParse(orgID),
		Name:           "March 2026",
		Status:         payroll.StatusPending,
		CreatedBy:      "admin@example.com",
		PeriodStart:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestPreviewService_Create(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("success includes only active and on-leave employees", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		eligible := []payroll.EmployeePayLine{
			{ID: uuid.New(), Email: "a@example.com"},
			{ID: uuid.New(), Email: "b@example.com"},
		}
		deps.repo.listPayrollEligibleEmployeesFn = func(ctx context.Context, oid string) ([]payroll.EmployeePayLine, error) {
			assert.Equal(t, orgID, oid)
			return eligible, nil
		}

		var joined []payroll.EmployeePayrollPreview
		deps.repo.createPreviewEmployeesFn = func(ctx context.Context, rows []payroll.EmployeePayrollPreview) error {
			joined = rows
			return nil
		}

		resp, err := deps.preview.Create(ctx, orgID, "admin@example.com", payroll.CreatePayrollPreviewRequest{
			Name:        "March 2026",
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-31",
		})

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusPending, resp.Status)
		assert.Equal(t, "admin@example.com", resp.CreatedBy)
		assert.Equal(t, "2026-03-01", resp.PeriodStart)
		assert.Equal(t, "2026-03-31", resp.PeriodEnd)
		assert.Len(t, joined, 2)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative inverted period", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		_, err := deps.preview.Create(ctx, orgID, "admin@example.com", payroll.CreatePayrollPreviewRequest{
			Name:        "March 2026",
			PeriodStart: "2026-03-31",
			PeriodEnd:   "2026-03-01",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollPeriod)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative malformed period date", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		_, err := deps.preview.Create(ctx, orgID, "admin@example.com", payroll.CreatePayrollPreviewRequest{
			Name:        "March 2026",
			PeriodStart: "03/01/2026",
			PeriodEnd:   "2026-03-31",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollPeriod)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate name", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.existsPreviewByNameFn = func(ctx context.Context, oid, name string) (bool, error) {
			return true, nil
		}

		_, err := deps.preview.Create(ctx, orgID, "admin@example.com", payroll.CreatePayrollPreviewRequest{
			Name:        "March 2026",
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-31",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrPreviewNameTaken)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPreviewService_UpdateEmployeeInfo(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	employeeID := uuid.New()

	req := payroll.UpdateEmployeePayrollRequest{
		BasicSalary: "100000",
		Housing:     "20000",
		Tax:         "8000",
		GrossPay:    "120000",
		NetPay:      "112000",
	}

	t.Run("success writes parsed decimals verbatim", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		preview := pendingPreview(orgID)
		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return preview, nil
		}
		deps.repo.existsPreviewEmployeeFn = func(ctx context.Context, pid, eid string) (bool, error) {
			return true, nil
		}

		var written payroll.EmployeePayLine
		deps.repo.updateEmployeePayFieldsFn = func(ctx context.Context, oid, eid string, line payroll.EmployeePayLine) error {
			written = line
			return nil
		}
		deps.repo.findPayLineFn = func(ctx context.Context, oid, eid string) (*payroll.EmployeePayLine, error) {
			return &payroll.EmployeePayLine{
				ID:          employeeID,
				BasicSalary: written.BasicSalary,
				GrossPay:    written.GrossPay,
				NetPay:      written.NetPay,
			}, nil
		}

		resp, err := deps.preview.UpdateEmployeeInfo(ctx, orgID, preview.ID.String(), employeeID.String(), req)

		assert.NoError(t, err)
		assert.True(t, written.BasicSalary.Equal(dec("100000")))
		assert.True(t, written.NetPay.Equal(dec("112000")))
		// Gross and net are stored as supplied, not recomputed.
		assert.Equal(t, "112000.00", resp.NetPay)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non numeric amount is rejected before any write", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		bad := req
		bad.Housing = "twenty thousand"

		updated := false
		deps.repo.updateEmployeePayFieldsFn = func(ctx context.Context, oid, eid string, line payroll.EmployeePayLine) error {
			updated = true
			return nil
		}

		_, err := deps.preview.UpdateEmployeeInfo(ctx, orgID, uuid.New().String(), employeeID.String(), bad)

		assert.Error(t, err)
		assert.False(t, updated)
	})

	t.Run("negative employee not in preview", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return pendingPreview(orgID), nil
		}
		deps.repo.existsPreviewEmployeeFn = func(ctx context.Context, pid, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.preview.UpdateEmployeeInfo(ctx, orgID, uuid.New().String(), employeeID.String(), req)

		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotInPreview)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative approved preview is frozen", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		frozen := pendingPreview(orgID)
		frozen.Status = payroll.StatusApproved
		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return frozen, nil
		}

		_, err := deps.preview.UpdateEmployeeInfo(ctx, orgID, frozen.ID.String(), employeeID.String(), req)

		assert.ErrorIs(t, err, payrollerrors.ErrPreviewNotEditable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPreviewService_AddRemoveEmployee(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	employeeID := uuid.New()

	t.Run("adding an included employee conflicts", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		preview := pendingPreview(orgID)
		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return preview, nil
		}
		deps.repo.findPayLineFn = func(ctx context.Context, oid, eid string) (*payroll.EmployeePayLine, error) {
			return &payroll.EmployeePayLine{ID: employeeID}, nil
		}
		deps.repo.existsPreviewEmployeeFn = func(ctx context.Context, pid, eid string) (bool, error) {
			return true, nil
		}

		err := deps.preview.AddEmployee(ctx, orgID, preview.ID.String(), employeeID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeAlreadyInPreview)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("removing a non-included employee is not found", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		preview := pendingPreview(orgID)
		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return preview, nil
		}
		deps.repo.removePreviewEmployeeFn = func(ctx context.Context, pid, eid string) (int64, error) {
			return 0, nil
		}

		err := deps.preview.RemoveEmployee(ctx, orgID, preview.ID.String(), employeeID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotInPreview)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("add then remove round trip", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		expectTx(t, deps.sqlMock, true)

		preview := pendingPreview(orgID)
		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return preview, nil
		}
		deps.repo.findPayLineFn = func(ctx context.Context, oid, eid string) (*payroll.EmployeePayLine, error) {
			return &payroll.EmployeePayLine{ID: employeeID}, nil
		}

		included := false
		deps.repo.existsPreviewEmployeeFn = func(ctx context.Context, pid, eid string) (bool, error) {
			return included, nil
		}
		deps.repo.createPreviewEmployeesFn = func(ctx context.Context, rows []payroll.EmployeePayrollPreview) error {
			included = true
			return nil
		}
		deps.repo.removePreviewEmployeeFn = func(ctx context.Context, pid, eid string) (int64, error) {
			if !included {
				return 0, nil
			}
			included = false
			return 1, nil
		}

		assert.NoError(t, deps.preview.AddEmployee(ctx, orgID, preview.ID.String(), employeeID.String()))
		assert.NoError(t, deps.preview.RemoveEmployee(ctx, orgID, preview.ID.String(), employeeID.String()))
		assert.False(t, included)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
