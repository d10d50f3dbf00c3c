package payroll_test

import (
	"context"
	"testing"

	"krishr/internal/payroll"
	payrollerrors "krishr/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func payLines() []payroll.EmployeePayLine {
	return []payroll.EmployeePayLine{
		{
			ID:              uuid.New(),
			FirstName:       "Ada",
			Email:           "ada@example.com",
			Bonus:           dec("1500"),
			Tax:             dec("8000"),
			Deduction:       dec("2000"),
			EmployerPension: dec("6000"),
			GrossPay:        dec("120000"),
			NetPay:          dec("110000"),
		},
		{
			ID:              uuid.New(),
			FirstName:       "Bayo",
			Email:           "bayo@example.com",
			Bonus:           dec("500.25"),
			Tax:             dec("5000.50"),
			Deduction:       dec("1000"),
			EmployerPension: dec("4000"),
			GrossPay:        dec("80000"),
			NetPay:          dec("74000"),
		},
	}
}

func TestApproveService_GetPayrollAndTotal(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("totals equal the sum of employee lines", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		preview := pendingPreview(orgID)
		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return preview, nil
		}
		deps.repo.listPreviewEmployeesFn = func(ctx context.Context, oid, pid string) ([]payroll.EmployeePayLine, error) {
			return payLines(), nil
		}

		resp, err := deps.approve.GetPayrollAndTotal(ctx, orgID, preview.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "184000.00", resp.Totals.NetPay)
		assert.Equal(t, "200000.00", resp.Totals.GrossPay)
		assert.Equal(t, "13000.50", resp.Totals.Taxes)
		assert.Equal(t, "2000.25", resp.Totals.Bonus)
		assert.Equal(t, "3000.00", resp.Totals.Deduction)
		assert.Equal(t, "10000.00", resp.Totals.EmployerPension)
		assert.Len(t, resp.Employees, 2)
	})

	t.Run("negative unknown preview", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		_, err := deps.approve.GetPayrollAndTotal(ctx, orgID, uuid.New().String())

		assert.ErrorIs(t, err, payrollerrors.ErrPreviewNotFound)
	})
}

func TestApproveService_Approve(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("success snapshots every pay line and the totals", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		preview := pendingPreview(orgID)
		lines := payLines()
		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return preview, nil
		}
		deps.repo.listPreviewEmployeesFn = func(ctx context.Context, oid, pid string) ([]payroll.EmployeePayLine, error) {
			return lines, nil
		}

		var statusSet string
		deps.repo.updatePreviewStatusFn = func(ctx context.Context, pid uuid.UUID, status string) error {
			assert.Equal(t, preview.ID, pid)
			statusSet = status
			return nil
		}

		var snapshot *payroll.OrganizationPayroll
		deps.repo.createOrganizationPayrollFn = func(ctx context.Context, p *payroll.OrganizationPayroll) error {
			snapshot = p
			return nil
		}

		resp, err := deps.approve.Approve(ctx, orgID, preview.ID.String(), "admin@example.com")

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusApproved, statusSet)
		assert.NotNil(t, snapshot)
		assert.Len(t, snapshot.Employees, 2)
		assert.True(t, snapshot.TotalNetPay.Equal(dec("184000")))
		assert.True(t, snapshot.TotalBonus.Equal(dec("2000.25")))
		assert.True(t, snapshot.TotalEmployerPension.Equal(dec("10000")))
		assert.Equal(t, "admin@example.com", snapshot.ApprovedBy)
		assert.Equal(t, "184000.00", resp.Totals.NetPay)
		assert.Len(t, deps.outbox.created, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approving twice produces two snapshots", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		expectTx(t, deps.sqlMock, true)

		preview := pendingPreview(orgID)
		deps.repo.findPreviewByIDFn = func(ctx context.Context, oid, id string) (*payroll.PayrollPreview, error) {
			return preview, nil
		}
		deps.repo.listPreviewEmployeesFn = func(ctx context.Context, oid, pid string) ([]payroll.EmployeePayLine, error) {
			return payLines(), nil
		}

		var snapshots []*payroll.OrganizationPayroll
		deps.repo.createOrganizationPayrollFn = func(ctx context.Context, p *payroll.OrganizationPayroll) error {
			snapshots = append(snapshots, p)
			return nil
		}

		_, err := deps.approve.Approve(ctx, orgID, preview.ID.String(), "admin@example.com")
		assert.NoError(t, err)
		_, err = deps.approve.Approve(ctx, orgID, preview.ID.String(), "admin@example.com")
		assert.NoError(t, err)

		// Repeated approval is unguarded and appends a second history row.
		assert.Len(t, snapshots, 2)
		assert.NotEqual(t, snapshots[0].ID, snapshots[1].ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown preview rolls back", func(t *testing.T) {
		deps := setupPayrollTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.approve.Approve(ctx, orgID, uuid.New().String(), "admin@example.com")

		assert.ErrorIs(t, err, payrollerrors.ErrPreviewNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
