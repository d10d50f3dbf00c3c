package appraisal_test

import (
	"context"
	"database/sql"
	"testing"

	"krishr/internal/appraisal"
	appraisalerrors "krishr/internal/appraisal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAppraisalRepository struct {
	withTxFn func(tx *sql.Tx) appraisal.Repository

	createFn                func(ctx context.Context, a *appraisal.Appraisal) error
	findByIDFn              func(ctx context.Context, orgID, id string) (*appraisal.Appraisal, error)
	findAllByOrganizationFn func(ctx context.Context, orgID string) ([]appraisal.Appraisal, error)

	listEmployeeIDsFn          func(ctx context.Context, orgID string) ([]uuid.UUID, error)
	createEmployeeAppraisalsFn func(ctx context.Context, rows []appraisal.EmployeeAppraisal) error
	findEmployeeAppraisalFn    func(ctx context.Context, orgID, appraisalID, employeeID string) (*appraisal.EmployeeAppraisal, error)
	listEmployeeAppraisalsFn   func(ctx context.Context, orgID, appraisalID string) ([]appraisal.EmployeeAppraisal, error)
	markSubmittedFn            func(ctx context.Context, row *appraisal.EmployeeAppraisal) error

	listQuestionIDsFn func(ctx context.Context, appraisalID string) ([]uuid.UUID, error)
	saveResponsesFn   func(ctx context.Context, responses []appraisal.AppraisalResponse) error
	listResponsesFn   func(ctx context.Context, employeeAppraisalID string) ([]appraisal.AppraisalResponse, error)
}

func (f *fakeAppraisalRepository) WithTx(tx *sql.Tx) appraisal.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAppraisalRepository) Create(ctx context.Context, a *appraisal.Appraisal) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAppraisalRepository) FindByID(ctx context.Context, orgID, id string) (*appraisal.Appraisal, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, orgID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppraisalRepository) FindAllByOrganization(ctx context.Context, orgID string) ([]appraisal.Appraisal, error) {
	if f.findAllByOrganizationFn != nil {
		return f.findAllByOrganizationFn(ctx, orgID)
	}
	return nil, nil
}

func (f *fakeAppraisalRepository) ListEmployeeIDs(ctx context.Context, orgID string) ([]uuid.UUID, error) {
	if f.listEmployeeIDsFn != nil {
		return f.listEmployeeIDsFn(ctx, orgID)
	}
	return nil, nil
}

func (f *fakeAppraisalRepository) CreateEmployeeAppraisals(ctx context.Context, rows []appraisal.EmployeeAppraisal) error {
	if f.createEmployeeAppraisalsFn != nil {
		return f.createEmployeeAppraisalsFn(ctx, rows)
	}
	return nil
}

func (f *fakeAppraisalRepository) FindEmployeeAppraisal(ctx context.Context, orgID, appraisalID, employeeID string) (*appraisal.EmployeeAppraisal, error) {
	if f.findEmployeeAppraisalFn != nil {
		return f.findEmployeeAppraisalFn(ctx, orgID, appraisalID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppraisalRepository) ListEmployeeAppraisals(ctx context.Context, orgID, appraisalID string) ([]appraisal.EmployeeAppraisal, error) {
	if f.listEmployeeAppraisalsFn != nil {
		return f.listEmployeeAppraisalsFn(ctx, orgID, appraisalID)
	}
	return nil, nil
}

func (f *fakeAppraisalRepository) MarkSubmitted(ctx context.Context, row *appraisal.EmployeeAppraisal) error {
	if f.markSubmittedFn != nil {
		return f.markSubmittedFn(ctx, row)
	}
	return nil
}

func (f *fakeAppraisalRepository) ListQuestionIDs(ctx context.Context, appraisalID string) ([]uuid.UUID, error) {
	if f.listQuestionIDsFn != nil {
		return f.listQuestionIDsFn(ctx, appraisalID)
	}
	return nil, nil
}

func (f *fakeAppraisalRepository) SaveResponses(ctx context.Context, responses []appraisal.AppraisalResponse) error {
	if f.saveResponsesFn != nil {
		return f.saveResponsesFn(ctx, responses)
	}
	return nil
}

func (f *fakeAppraisalRepository) ListResponses(ctx context.Context, employeeAppraisalID string) ([]appraisal.AppraisalResponse, error) {
	if f.listResponsesFn != nil {
		return f.listResponsesFn(ctx, employeeAppraisalID)
	}
	return nil, nil
}

type appraisalServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service appraisal.Service
	repo    *fakeAppraisalRepository
}

func setupAppraisalServiceTest(t *testing.T) *appraisalServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAppraisalRepository{}
	svc := appraisal.NewService(db, repo)

	return &appraisalServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func TestAppraisalService_Create(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	req := appraisal.CreateAppraisalRequest{
		Title: "2026 Mid-Year Review",
		Sections: []appraisal.CreateSectionRequest{
			{Title: "Delivery", Questions: []string{"What shipped?", "What slipped?"}},
			{Title: "Growth", Questions: []string{"What did you learn?"}},
		},
	}

	t.Run("success fans out to every employee", func(t *testing.T) {
		deps := setupAppraisalServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var created *appraisal.Appraisal
		deps.repo.createFn = func(ctx context.Context, a *appraisal.Appraisal) error {
			created = a
			return nil
		}

		employees := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		deps.repo.listEmployeeIDsFn = func(ctx context.Context, oid string) ([]uuid.UUID, error) {
			return employees, nil
		}

		var fannedOut []appraisal.EmployeeAppraisal
		deps.repo.createEmployeeAppraisalsFn = func(ctx context.Context, rows []appraisal.EmployeeAppraisal) error {
			fannedOut = rows
			return nil
		}

		resp, err := deps.service.Create(ctx, orgID, req)

		assert.NoError(t, err)
		assert.Len(t, resp.Sections, 2)
		assert.Len(t, resp.Sections[0].Questions, 2)

		assert.NotNil(t, created)
		assert.Len(t, created.Sections, 2)
		assert.Len(t, fannedOut, 3)
		for _, row := range fannedOut {
			assert.Equal(t, created.ID, row.AppraisalID)
			assert.Equal(t, appraisal.StatusPending, row.Status)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAppraisalService_SubmitResponses(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	appraisalID := uuid.New()
	employeeID := uuid.New()
	questionID := uuid.New()

	participant := func(status string) *appraisal.EmployeeAppraisal {
		return &appraisal.EmployeeAppraisal{
			ID:             uuid.New(),
			OrganizationID: uuid.MustParse(orgID),
			AppraisalID:    appraisalID,
			EmployeeID:     employeeID,
			Status:         status,
		}
	}

	req := appraisal.SubmitResponsesRequest{
		Responses: []appraisal.QuestionResponse{
			{QuestionID: questionID.String(), Answer: "Shipped the payroll rework."},
		},
	}

	t.Run("success marks the participation submitted", func(t *testing.T) {
		deps := setupAppraisalServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findEmployeeAppraisalFn = func(ctx context.Context, oid, aid, eid string) (*appraisal.EmployeeAppraisal, error) {
			return participant(appraisal.StatusPending), nil
		}
		deps.repo.listQuestionIDsFn = func(ctx context.Context, aid string) ([]uuid.UUID, error) {
			return []uuid.UUID{questionID}, nil
		}

		var saved []appraisal.AppraisalResponse
		deps.repo.saveResponsesFn = func(ctx context.Context, responses []appraisal.AppraisalResponse) error {
			saved = responses
			return nil
		}

		marked := false
		deps.repo.markSubmittedFn = func(ctx context.Context, row *appraisal.EmployeeAppraisal) error {
			marked = true
			assert.Equal(t, appraisal.StatusSubmitted, row.Status)
			assert.NotNil(t, row.SubmittedAt)
			return nil
		}

		resp, err := deps.service.SubmitResponses(ctx, orgID, appraisalID.String(), employeeID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, appraisal.StatusSubmitted, resp.Status)
		assert.Len(t, saved, 1)
		assert.True(t, marked)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative double submission", func(t *testing.T) {
		deps := setupAppraisalServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findEmployeeAppraisalFn = func(ctx context.Context, oid, aid, eid string) (*appraisal.EmployeeAppraisal, error) {
			return participant(appraisal.StatusSubmitted), nil
		}

		_, err := deps.service.SubmitResponses(ctx, orgID, appraisalID.String(), employeeID.String(), req)

		assert.ErrorIs(t, err, appraisalerrors.ErrAppraisalAlreadySubmitted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative response for a foreign question", func(t *testing.T) {
		deps := setupAppraisalServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findEmployeeAppraisalFn = func(ctx context.Context, oid, aid, eid string) (*appraisal.EmployeeAppraisal, error) {
			return participant(appraisal.StatusPending), nil
		}
		deps.repo.listQuestionIDsFn = func(ctx context.Context, aid string) ([]uuid.UUID, error) {
			return []uuid.UUID{uuid.New()}, nil
		}

		_, err := deps.service.SubmitResponses(ctx, orgID, appraisalID.String(), employeeID.String(), req)

		assert.ErrorIs(t, err, appraisalerrors.ErrQuestionNotInAppraisal)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
