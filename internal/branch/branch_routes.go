package branch

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	branches := r.Group("/branches")

	branches.Use(middleware.AuthMiddleware())

	{
		branches.GET("", h.GetAll)
		branches.GET("/:id", h.GetById)
		branches.POST("", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Create)
		branches.PUT("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Update)
		branches.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), h.Delete)
	}
}
