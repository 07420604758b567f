package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/satriajanaka/erp-backend/internal/interface/http"
)

// ReportModule registers the read-only report and export routes behind auth.
type ReportModule struct {
	Handler *handlers.ReportHandler
	Auth    gin.HandlerFunc
}

func NewReportModule(h *handlers.ReportHandler, auth gin.HandlerFunc) *ReportModule {
	return &ReportModule{Handler: h, Auth: auth}
}

func (m *ReportModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/reports")
	g.Use(m.Auth)
	{
		g.GET("/employees-by-department", m.Handler.EmployeesByDepartment)
		g.GET("/salary-cost-per-department", m.Handler.SalaryCostPerDepartment)
		g.GET("/active-projects", m.Handler.ActiveProjects)
		g.GET("/export/employees.csv", m.Handler.ExportEmployeesCSV)
		g.GET("/export/salary.xlsx", m.Handler.ExportSalaryXLSX)
	}
}
