package department

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	departments := r.Group("/departments")

	departments.Use(middleware.AuthMiddleware())

	{
		departments.GET("", h.GetAll)
		departments.GET("/:id", h.GetById)
		departments.POST("", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Create)
		departments.PUT("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Update)
		departments.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Delete)
	}
}
