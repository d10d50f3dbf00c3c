package job

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	jobs := r.Group("/jobs")

	jobs.Use(middleware.AuthMiddleware())

	{
		jobs.GET("", h.GetAll)
		jobs.GET("/:id", h.GetById)
		jobs.POST("", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Create)
		jobs.PUT("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Update)
		jobs.POST("/:id/close", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Close)
		jobs.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Delete)
	}
}
