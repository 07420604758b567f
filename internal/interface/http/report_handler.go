package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/application"
	"github.com/satriajanaka/erp-backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	Svc    *application.ReportService
	Logger *logrus.Logger
}

func NewReportHandler(svc *application.ReportService, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{Svc: svc, Logger: logger}
}

func (h *ReportHandler) EmployeesByDepartment(c *gin.Context) {
	rows, err := h.Svc.EmployeesByDepartment(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, rows, "employees by department", nil)
	c.JSON(resp.Status, resp)
}

func (h *ReportHandler) SalaryCostPerDepartment(c *gin.Context) {
	rows, err := h.Svc.SalaryCostPerDepartment(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, rows, "salary cost per department", nil)
	c.JSON(resp.Status, resp)
}

func (h *ReportHandler) ActiveProjects(c *gin.Context) {
	rows, err := h.Svc.ActiveProjects(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	resp := response.Success(c, http.StatusOK, rows, "active projects", nil)
	c.JSON(resp.Status, resp)
}

// ExportEmployeesCSV streams the employee export as a file download.
func (h *ReportHandler) ExportEmployeesCSV(c *gin.Context) {
	data, err := h.Svc.EmployeesCSV(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="employees.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportSalaryXLSX streams the salary workbook. When the spreadsheet
// capability is not wired the endpoint answers 500 with a detail body.
func (h *ReportHandler) ExportSalaryXLSX(c *gin.Context) {
	data, err := h.Svc.SalaryXLSX(c.Request.Context(), principal(c))
	if err != nil {
		if errors.Is(err, application.ErrExportUnavailable) {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "XLSX export is not available on this server."})
			return
		}
		writeError(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="salary_report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
