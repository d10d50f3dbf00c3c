package leave

import (
	"net/http"

	"krishr/internal/shared/apperror"
	"krishr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Message)
}

func queueFromParam(raw string) (Queue, bool) {
	switch Queue(raw) {
	case QueueTeam, QueueBranch, QueueDept:
		return Queue(raw), true
	default:
		return "", false
	}
}

func (h *Handler) CreatePlan(c *gin.Context) {
	var req CreateLeavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Message)
		return
	}

	resp, err := h.service.CreatePlan(c.Request.Context(), c.GetString("organization_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Leave plan created", resp)
}

func (h *Handler) GetPlans(c *gin.Context) {
	resp, err := h.service.GetPlans(c.Request.Context(), c.GetString("organization_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave plans retrieved", resp)
}

func (h *Handler) GetMyBalances(c *gin.Context) {
	resp, err := h.service.GetBalances(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.GetString("employee_id"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave balances retrieved", resp)
}

func (h *Handler) Apply(c *gin.Context) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Message)
		return
	}

	resp, err := h.service.Apply(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.GetString("employee_id"),
		req,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Leave application submitted", resp)
}

func (h *Handler) GetQueue(c *gin.Context) {
	queue, ok := queueFromParam(c.Param("queue"))
	if !ok {
		response.Error(c, http.StatusNotFound, "Unknown approval queue")
		return
	}

	resp, err := h.service.GetQueue(c.Request.Context(), c.GetString("organization_id"), queue)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave requests retrieved", resp)
}

func (h *Handler) Approve(c *gin.Context) {
	queue, ok := queueFromParam(c.Param("queue"))
	if !ok {
		response.Error(c, http.StatusNotFound, "Unknown approval queue")
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), c.GetString("organization_id"), queue, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave application approved", resp)
}

func (h *Handler) Decline(c *gin.Context) {
	queue, ok := queueFromParam(c.Param("queue"))
	if !ok {
		response.Error(c, http.StatusNotFound, "Unknown approval queue")
		return
	}

	resp, err := h.service.Decline(c.Request.Context(), c.GetString("organization_id"), queue, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave application declined", resp)
}
