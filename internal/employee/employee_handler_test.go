package employee_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"krishr/internal/employee"
	employeeerrors "krishr/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	OnboardFn    func(ctx context.Context, orgID string, req employee.OnboardEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context, orgID string) ([]employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context, orgID string) ([]employee.EmployeeResponse, error)
	GetByIDFn    func(ctx context.Context, orgID, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, orgID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, orgID, id string) error
}

func (f *fakeEmployeeService) Onboard(ctx context.Context, orgID string, req employee.OnboardEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.OnboardFn(ctx, orgID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, orgID string) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, orgID)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, orgID string) ([]employee.EmployeeResponse, error) {
	return f.GetOptionsFn(ctx, orgID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, orgID, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, orgID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, orgID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, orgID, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, orgID, id string) error {
	return f.DeleteFn(ctx, orgID, id)
}

func TestEmployeeHandler_Onboard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := `{"first_name":"Ada","last_name":"Obi","email":"ada@example.com","hire_date":"2026-02-01","basic_salary":"250000"}`

	t.Run("success", func(t *testing.T) {
		orgID := uuid.New().String()

		svc := &fakeEmployeeService{
			OnboardFn: func(ctx context.Context, oid string, req employee.OnboardEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, orgID, oid)
				assert.Equal(t, "Ada", req.FirstName)
				return employee.EmployeeResponse{
					ID:             uuid.New().String(),
					OrganizationID: oid,
					FirstName:      req.FirstName,
					LastName:       req.LastName,
					Email:          req.Email,
					EmployeeNumber: "EMP-000001",
					Status:         employee.StatusActive,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("organization_id", orgID)

		h.Onboard(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-000001")
		assert.Contains(t, w.Body.String(), `"status":201`)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeEmployeeService{}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("organization_id", uuid.New().String())

		h.Onboard(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "errorMessage")
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			OnboardFn: func(ctx context.Context, oid string, req employee.OnboardEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeEmailTaken
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("organization_id", uuid.New().String())

		h.Onboard(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			OnboardFn: func(ctx context.Context, oid string, req employee.OnboardEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("organization_id", uuid.New().String())

		h.Onboard(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEmployeeHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, oid, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("organization_id", uuid.New().String())

		h.Get(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
