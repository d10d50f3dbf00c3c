package payroll

import (
	"krishr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("ADMIN", "MANAGER"))
	{
		previews := payrolls.Group("/previews")
		{
			previews.POST("", middleware.Idempotency(rdb), handler.CreatePreview)
			previews.GET("", handler.GetPreviews)
			previews.GET("/:previewID", handler.GetPreview)
			previews.GET("/:previewID/totals", handler.GetPayrollAndTotal)
			previews.PUT("/:previewID/employees/:employeeID", handler.UpdateEmployeeInfo)
			previews.POST("/:previewID/employees", middleware.Idempotency(rdb), handler.AddEmployee)
			previews.DELETE("/:previewID/employees/:employeeID", handler.RemoveEmployee)
			previews.POST("/:previewID/approve", middleware.Idempotency(rdb), handler.Approve)
		}

		payrolls.GET("/history", handler.History)
		payrolls.GET("/history/:payrollID", handler.HistoryByID)
	}
}
