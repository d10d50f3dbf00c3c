package client

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	clients := r.Group("/clients")

	clients.Use(middleware.AuthMiddleware())

	{
		clients.GET("", h.GetAll)
		clients.GET("/:id", h.GetById)
		clients.POST("", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Create)
		clients.PUT("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Update)
		clients.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Delete)
	}
}
