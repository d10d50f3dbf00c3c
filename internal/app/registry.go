package app

import (
	"database/sql"

	"krishr/internal/appraisal"
	"krishr/internal/branch"
	"krishr/internal/client"
	"krishr/internal/department"
	"krishr/internal/employee"
	"krishr/internal/job"
	"krishr/internal/leave"
	"krishr/internal/messaging/kafka"
	"krishr/internal/organization"
	"krishr/internal/payroll"
	"krishr/internal/shared/counter"
	"krishr/internal/team"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	appraisalRepo := appraisal.NewRepository(gormDB)
	branchRepo := branch.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	jobRepo := job.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	organizationRepo := organization.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)

	// --- Services ---
	appraisalService := appraisal.NewService(db, appraisalRepo)
	branchService := branch.NewService(db, branchRepo)
	clientService := client.NewService(db, clientRepo)
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewService(
		db,
		employeeRepo,
		counterRepo,
		outboxRepo,
		leave.NewBalanceSeeder(leaveRepo),
		rdb,
	)
	jobService := job.NewService(db, jobRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	organizationService := organization.NewService(db, organizationRepo, counterRepo)
	payrollPreviewService := payroll.NewPreviewService(db, payrollRepo)
	payrollApproveService := payroll.NewApproveService(db, payrollRepo, outboxRepo)
	teamService := team.NewService(db, teamRepo)

	// --- Handlers ---
	appraisalHandler := appraisal.NewHandler(appraisalService)
	branchHandler := branch.NewHandler(branchService)
	clientHandler := client.NewHandler(clientService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	jobHandler := job.NewHandler(jobService)
	leaveHandler := leave.NewHandler(leaveService)
	organizationHandler := organization.NewHandler(organizationService)
	payrollHandler := payroll.NewHandler(payrollPreviewService, payrollApproveService, rdb)
	teamHandler := team.NewHandler(teamService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		appraisal.RegisterRoutes(api, appraisalHandler)
		branch.RegisterRoutes(api, branchHandler)
		client.RegisterRoutes(api, clientHandler)
		department.RegisterRoutes(api, departmentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		job.RegisterRoutes(api, jobHandler)
		leave.RegisterRoutes(api, leaveHandler)
		organization.RegisterRoutes(api, organizationHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		team.RegisterRoutes(api, teamHandler)
	}

	return nil
}
