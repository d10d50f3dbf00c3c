package employee

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("", middleware.RoleMiddleware("ADMIN", "MANAGER"), handler.Onboard)
		employees.GET("", handler.GetAll)
		employees.GET("/options", handler.GetOptions)
		employees.GET("/:id", handler.Get)
		employees.PUT("/:id", middleware.RoleMiddleware("ADMIN", "MANAGER"), handler.Update)
		employees.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), handler.Delete)
	}
}
