package router

import (
	"time"

	"github.com/satriajanaka/erp-backend/internal/application"
	"github.com/satriajanaka/erp-backend/internal/container"
	pginfra "github.com/satriajanaka/erp-backend/internal/infrastructure/postgres"
	handlers "github.com/satriajanaka/erp-backend/internal/interface/http"
	"github.com/satriajanaka/erp-backend/internal/interface/middleware"
	"github.com/satriajanaka/erp-backend/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module with the registry. Call once
// during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	departments := pginfra.NewDepartmentRepository(pool)
	employees := pginfra.NewEmployeeRepository(pool)
	projects := pginfra.NewProjectRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), logger)
	deptSvc := application.NewDepartmentService(departments, logger)
	empSvc := application.NewEmployeeService(employees, logger)
	projSvc := application.NewProjectService(projects, logger)
	reportSvc := application.NewReportService(employees, projects, container.GetSheets(), logger)

	auth := middleware.Auth(users, container.GetJWT())

	// soft per-IP-per-route limit across the whole API surface
	r.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIPAndPath(), nil))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewDepartmentModule(handlers.NewDepartmentHandler(deptSvc, logger), auth))
	r.Add(modules.NewEmployeeModule(handlers.NewEmployeeHandler(empSvc, logger), auth))
	r.Add(modules.NewProjectModule(handlers.NewProjectHandler(projSvc, logger), auth))
	r.Add(modules.NewReportModule(handlers.NewReportHandler(reportSvc, logger), auth))
}
