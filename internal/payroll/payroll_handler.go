package payroll

import (
	"encoding/json"
	"net/http"
	"time"

	"krishr/internal/shared/apperror"
	"krishr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	preview PreviewService
	approve ApproveService
	rdb     *redis.Client
}

func NewHandler(preview PreviewService, approve ApproveService, rdb *redis.Client) *Handler {
	return &Handler{preview: preview, approve: approve, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	h.releaseIdempotencyLock(c)
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Message)
}

// finishIdempotent stores the successful payload for replay and drops the
// in-flight lock set by the idempotency middleware.
func (h *Handler) finishIdempotent(c *gin.Context, payload interface{}) {
	if h.rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" {
		return
	}
	if data, err := json.Marshal(payload); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey, data, 24*time.Hour)
	}
	h.releaseIdempotencyLock(c)
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}

func (h *Handler) CreatePreview(c *gin.Context) {
	var req CreatePayrollPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c)
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Message)
		return
	}

	resp, err := h.preview.Create(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.GetString("email"),
		req,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.finishIdempotent(c, resp)
	response.Success(c, http.StatusCreated, "Payroll preview created", resp)
}

func (h *Handler) GetPreviews(c *gin.Context) {
	resp, err := h.preview.GetAll(c.Request.Context(), c.GetString("organization_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payroll previews retrieved", resp)
}

func (h *Handler) GetPreview(c *gin.Context) {
	resp, err := h.preview.Get(c.Request.Context(), c.GetString("organization_id"), c.Param("previewID"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payroll preview retrieved", resp)
}

func (h *Handler) UpdateEmployeeInfo(c *gin.Context) {
	var req UpdateEmployeePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Message)
		return
	}

	resp, err := h.preview.UpdateEmployeeInfo(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.Param("previewID"),
		c.Param("employeeID"),
		req,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employee payroll information updated", resp)
}

func (h *Handler) AddEmployee(c *gin.Context) {
	var req AddPreviewEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c)
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Message)
		return
	}

	err := h.preview.AddEmployee(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.Param("previewID"),
		req.EmployeeID,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.finishIdempotent(c, gin.H{"employee_id": req.EmployeeID})
	response.Success(c, http.StatusOK, "Employee added to payroll preview", nil)
}

func (h *Handler) RemoveEmployee(c *gin.Context) {
	err := h.preview.RemoveEmployee(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.Param("previewID"),
		c.Param("employeeID"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employee removed from payroll preview", nil)
}

func (h *Handler) GetPayrollAndTotal(c *gin.Context) {
	resp, err := h.approve.GetPayrollAndTotal(c.Request.Context(), c.GetString("organization_id"), c.Param("previewID"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payroll totals computed", resp)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.approve.Approve(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.Param("previewID"),
		c.GetString("email"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.finishIdempotent(c, resp)
	response.Success(c, http.StatusOK, "Payroll preview approved", resp)
}

func (h *Handler) History(c *gin.Context) {
	resp, err := h.approve.History(c.Request.Context(), c.GetString("organization_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payroll history retrieved", resp)
}

func (h *Handler) HistoryByID(c *gin.Context) {
	resp, err := h.approve.HistoryByID(c.Request.Context(), c.GetString("organization_id"), c.Param("payrollID"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payroll retrieved", resp)
}
