package router

import (
	"github.com/redis/go-redis/v9"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/controller/http/v1/file"
	"hrms/backend/internal/middleware"
	"hrms/backend/internal/payroll"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/repository/postgres/attendance"
	"hrms/backend/internal/repository/postgres/department"
	"hrms/backend/internal/repository/postgres/employee"
	"hrms/backend/internal/repository/postgres/leave"
	"hrms/backend/internal/repository/postgres/overtime"
	"hrms/backend/internal/repository/postgres/report"

	attendance_controller "hrms/backend/internal/controller/http/v1/attendance"
	auth_controller "hrms/backend/internal/controller/http/v1/auth"
	department_controller "hrms/backend/internal/controller/http/v1/department"
	employee_controller "hrms/backend/internal/controller/http/v1/employee"
	leave_controller "hrms/backend/internal/controller/http/v1/leave"
	overtime_controller "hrms/backend/internal/controller/http/v1/overtime"
	report_controller "hrms/backend/internal/controller/http/v1/report"
)

type Router struct {
	*web.App
	postgresDB         *postgresql.Database
	redisDB            *redis.Client
	port               string
	auth               *auth.Auth
	policy             payroll.Policy
	privateKeyPath     string
	fileServerBasePath string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	policy payroll.Policy,
	privateKeyPath string,
	fileServerBasePath string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		policy,
		privateKeyPath,
		fileServerBasePath,
	}
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware())

	// - postgresql
	employeePostgres := employee.NewRepository(r.postgresDB)
	departmentPostgres := department.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, r.policy)
	overtimePostgres := overtime.NewRepository(r.postgresDB)
	leavePostgres := leave.NewRepository(r.postgresDB)
	reportPostgres := report.NewRepository(r.postgresDB, r.policy, employeePostgres)

	// controller
	authController := auth_controller.NewController(employeePostgres, r.redisDB, r.privateKeyPath)
	employeeController := employee_controller.NewController(employeePostgres)
	departmentController := department_controller.NewController(departmentPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres)
	overtimeController := overtime_controller.NewController(overtimePostgres)
	leaveController := leave_controller.NewController(leavePostgres)
	reportController := report_controller.NewController(reportPostgres)

	fileC := file.NewController(r.App, r.fileServerBasePath)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	r.GET("/media/*filepath", fileC.File)
	r.HEAD("/media/*filepath", fileC.File)

	// #employee
	r.Get("/api/v1/employee/list", employeeController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/export", employeeController.ExportEmployee, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/export_template", employeeController.ExportTemplate, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/:id", employeeController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/:id/badge", employeeController.GetBadge, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/employee/create", employeeController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/employee/create_excel", employeeController.CreateByExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/employee/:id", employeeController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/employee/:id", employeeController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #department
	r.Get("/api/v1/department/list", departmentController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/department/:id", departmentController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/department/create", departmentController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/department/:id", departmentController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/department/:id", departmentController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/check-in", attendanceController.CheckIn, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/attendance/check-out", attendanceController.CheckOut, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/history", attendanceController.GetHistory, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/statistics", attendanceController.GetStatistics, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/:id", attendanceController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/attendance/:id", attendanceController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #overtime
	r.Post("/api/v1/overtime/create", overtimeController.Create, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/overtime/:id/approve", overtimeController.Approve, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/overtime/:id/reject", overtimeController.Reject, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/overtime/list", overtimeController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/overtime/:id", overtimeController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #leave
	r.Post("/api/v1/leave/create", leaveController.Create, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/leave/:id/approve", leaveController.Approve, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/leave/:id/reject", leaveController.Reject, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/leave/list", leaveController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/leave/:id", leaveController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #report
	r.Get("/api/v1/report/payroll", reportController.GetPayroll, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/report/payroll/excel", reportController.ExportPayrollExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/report/payroll/pdf", reportController.ExportPayrollPDF, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
