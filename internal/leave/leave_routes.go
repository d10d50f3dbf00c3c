package leave

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.RoleMiddleware("ADMIN", "MANAGER"), handler.CreatePlan)
		leaves.GET("", handler.GetPlans)
		leaves.GET("/balances", handler.GetMyBalances)

		leaves.POST("/applications", handler.Apply)

		requests := leaves.Group("/requests", middleware.RoleMiddleware("ADMIN", "MANAGER"))
		{
			requests.GET("/:queue", handler.GetQueue)
			requests.POST("/:queue/:id/approve", handler.Approve)
			requests.POST("/:queue/:id/decline", handler.Decline)
		}
	}
}
