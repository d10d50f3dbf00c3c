package team

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	teams := r.Group("/teams")

	teams.Use(middleware.AuthMiddleware())

	{
		teams.GET("", h.GetAll)
		teams.GET("/:id", h.GetById)
		teams.POST("", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Create)
		teams.PUT("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Update)
		teams.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Delete)
	}
}
