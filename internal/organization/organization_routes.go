package organization

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	orgs := r.Group("/organizations")
	{
		// Onboarding is open; everything else requires a tenant token.
		orgs.POST("", handler.Create)

		authed := orgs.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/me", handler.Get)
			authed.GET("/kris/:krisID", middleware.RoleMiddleware("SUPER_ADMIN"), handler.GetByKrisID)
			authed.PUT("/me", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Update)
		}
	}
}
