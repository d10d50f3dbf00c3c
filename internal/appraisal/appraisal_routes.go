package appraisal

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	appraisals := r.Group("/appraisals")
	appraisals.Use(middleware.AuthMiddleware())
	{
		appraisals.POST("", middleware.RoleMiddleware("ADMIN", "MANAGER"), handler.Create)
		appraisals.GET("", handler.GetAll)
		appraisals.GET("/:id", handler.Get)
		appraisals.GET("/:id/participants", middleware.RoleMiddleware("ADMIN", "MANAGER"), handler.GetParticipants)
		appraisals.POST("/:id/responses", handler.SubmitResponses)
		appraisals.GET("/:id/mine", handler.GetMine)
	}
}
