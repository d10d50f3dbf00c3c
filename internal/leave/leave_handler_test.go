package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"krishr/internal/leave"
	leaveerrors "krishr/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	CreatePlanFn  func(ctx context.Context, orgID string, req leave.CreateLeavePlanRequest) (leave.LeavePlanResponse, error)
	GetPlansFn    func(ctx context.Context, orgID string) ([]leave.LeavePlanResponse, error)
	GetBalancesFn func(ctx context.Context, orgID, employeeID string) ([]leave.LeaveBalanceResponse, error)
	ApplyFn       func(ctx context.Context, orgID, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveApplicationResponse, error)
	GetQueueFn    func(ctx context.Context, orgID string, queue leave.Queue) ([]leave.LeaveRequestResponse, error)
	ApproveFn     func(ctx context.Context, orgID string, queue leave.Queue, requestID string) (leave.LeaveApplicationResponse, error)
	DeclineFn     func(ctx context.Context, orgID string, queue leave.Queue, requestID string) (leave.LeaveApplicationResponse, error)
}

func (f *fakeLeaveService) CreatePlan(ctx context.Context, orgID string, req leave.CreateLeavePlanRequest) (leave.LeavePlanResponse, error) {
	return f.CreatePlanFn(ctx, orgID, req)
}
func (f *fakeLeaveService) GetPlans(ctx context.Context, orgID string) ([]leave.LeavePlanResponse, error) {
	return f.GetPlansFn(ctx, orgID)
}
func (f *fakeLeaveService) GetBalances(ctx context.Context, orgID, employeeID string) ([]leave.LeaveBalanceResponse, error) {
	return f.GetBalancesFn(ctx, orgID, employeeID)
}
func (f *fakeLeaveService) Apply(ctx context.Context, orgID, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveApplicationResponse, error) {
	return f.ApplyFn(ctx, orgID, employeeID, req)
}
func (f *fakeLeaveService) GetQueue(ctx context.Context, orgID string, queue leave.Queue) ([]leave.LeaveRequestResponse, error) {
	return f.GetQueueFn(ctx, orgID, queue)
}
func (f *fakeLeaveService) Approve(ctx context.Context, orgID string, queue leave.Queue, requestID string) (leave.LeaveApplicationResponse, error) {
	return f.ApproveFn(ctx, orgID, queue, requestID)
}
func (f *fakeLeaveService) Decline(ctx context.Context, orgID string, queue leave.Queue, requestID string) (leave.LeaveApplicationResponse, error) {
	return f.DeclineFn(ctx, orgID, queue, requestID)
}

func TestLeaveHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		orgID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeLeaveService{
			ApplyFn: func(ctx context.Context, oid, eid string, req leave.ApplyLeaveRequest) (leave.LeaveApplicationResponse, error) {
				assert.Equal(t, orgID, oid)
				assert.Equal(t, employeeID, eid)
				return leave.LeaveApplicationResponse{
					ID:        uuid.New().String(),
					LeaveName: req.LeaveName,
					Duration:  5,
					Status:    leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"leave_name":"ANNUAL","start_date":"2026-03-02","end_date":"2026-03-06","reason":"Family event"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves/applications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("organization_id", orgID)
		c.Set("employee_id", employeeID)

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusPending)
	})

	t.Run("insufficient balance surfaces as unprocessable", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApplyFn: func(ctx context.Context, oid, eid string, req leave.ApplyLeaveRequest) (leave.LeaveApplicationResponse, error) {
				return leave.LeaveApplicationResponse{}, leaveerrors.ErrInsufficientBalance
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"leave_name":"ANNUAL","start_date":"2026-03-02","end_date":"2026-03-06"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves/applications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("organization_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Apply(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown queue is not found", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leaves/requests/region/abc/approve", nil)
		c.Params = gin.Params{
			{Key: "queue", Value: "region"},
			{Key: "id", Value: uuid.New().String()},
		}
		c.Set("organization_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("team queue approval", func(t *testing.T) {
		requestID := uuid.New().String()
		svc := &fakeLeaveService{
			ApproveFn: func(ctx context.Context, oid string, queue leave.Queue, rid string) (leave.LeaveApplicationResponse, error) {
				assert.Equal(t, leave.QueueTeam, queue)
				assert.Equal(t, requestID, rid)
				return leave.LeaveApplicationResponse{Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leaves/requests/team/"+requestID+"/approve", nil)
		c.Params = gin.Params{
			{Key: "queue", Value: "team"},
			{Key: "id", Value: requestID},
		}
		c.Set("organization_id", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusApproved)
	})
}
