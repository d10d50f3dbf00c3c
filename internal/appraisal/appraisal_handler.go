package appraisal

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

func (h *Handler) Create(c *gin.Context) {
	var req CreateAppraisalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Message)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("organization_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Appraisal created", resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("organization_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Appraisals retrieved", resp)
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("organization_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Appraisal retrieved", resp)
}

func (h *Handler) GetParticipants(c *gin.Context) {
	resp, err := h.service.GetParticipants(c.Request.Context(), c.GetString("organization_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Appraisal participants retrieved", resp)
}

func (h *Handler) SubmitResponses(c *gin.Context) {
	var req SubmitResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Message)
		return
	}

	resp, err := h.service.SubmitResponses(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.Param("id"),
		c.GetString("employee_id"),
		req,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Appraisal responses submitted", resp)
}

func (h *Handler) GetMine(c *gin.Context) {
	resp, err := h.service.GetEmployeeAppraisal(
		c.Request.Context(),
		c.GetString("organization_id"),
		c.Param("id"),
		c.GetString("employee_id"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Employee appraisal retrieved", resp)
}
