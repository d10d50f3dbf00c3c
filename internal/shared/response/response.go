package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

// Envelope is the success shape every handler returns.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Payload any             `json:"payload,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
}

// ErrorEnvelope is the uniform shape all failed requests resolve to.
type ErrorEnvelope struct {
	Status       int    `json:"status"`
	ErrorMessage string `json:"errorMessage"`
	Path         string `json:"path"`
	Timestamp    string `json:"timestamp"`
}

func Success(c *gin.Context, status int, message string, payload any, meta ...*PaginationMeta) {
	env := Envelope{
		Status:  status,
		Message: message,
		Payload: payload,
	}
	if len(meta) > 0 {
		env.Meta = meta[0]
	}
	c.JSON(status, env)
}

func Error(c *gin.Context, status int, errorMessage string) {
	c.JSON(status, ErrorEnvelope{
		Status:       status,
		ErrorMessage: errorMessage,
		Path:         c.Request.URL.Path,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}
