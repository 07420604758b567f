package application

import (
	"bytes"
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/application/export"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

// ReportService computes the read-only aggregates. Every report narrows the
// underlying collection with the same policy the resource endpoints use
// before any computation happens.
type ReportService struct {
	Employees repository.EmployeeRepository
	Projects  repository.ProjectRepository
	// Sheets is nil when the spreadsheet capability is not wired; the
	// xlsx export then fails with ErrExportUnavailable.
	Sheets export.SpreadsheetWriter
	Logger *logrus.Logger
}

func NewReportService(employees repository.EmployeeRepository, projects repository.ProjectRepository, sheets export.SpreadsheetWriter, logger *logrus.Logger) *ReportService {
	return &ReportService{Employees: employees, Projects: projects, Sheets: sheets, Logger: logger}
}

// EmployeeByDepartmentRow emits the salary as an exact decimal string.
type EmployeeByDepartmentRow struct {
	Department *string `json:"department"`
	Employee   string  `json:"employee"`
	Salary     string  `json:"salary"`
	JobTitle   string  `json:"job_title"`
}

type SalaryCostRow struct {
	Department  *string `json:"department"`
	TotalSalary string  `json:"total_salary"`
}

type ActiveProjectRow struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

func (s *ReportService) EmployeesByDepartment(ctx context.Context, p policy.Principal) ([]EmployeeByDepartmentRow, error) {
	emps, _, err := s.Employees.List(ctx, policy.Narrow(p, policy.KindEmployee), repository.EmployeeQuery{})
	if err != nil {
		return nil, err
	}
	rows := make([]EmployeeByDepartmentRow, 0, len(emps))
	for i := range emps {
		e := &emps[i]
		rows = append(rows, EmployeeByDepartmentRow{
			Department: e.DepartmentName,
			Employee:   e.DisplayName(),
			Salary:     e.Salary.String(),
			JobTitle:   e.JobTitle,
		})
	}
	return rows, nil
}

func (s *ReportService) SalaryCostPerDepartment(ctx context.Context, p policy.Principal) ([]SalaryCostRow, error) {
	groups, err := s.Employees.SalaryByDepartment(ctx, policy.Narrow(p, policy.KindEmployee))
	if err != nil {
		return nil, err
	}
	rows := make([]SalaryCostRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, SalaryCostRow{Department: g.Department, TotalSalary: g.Total.String()})
	}
	return rows, nil
}

func (s *ReportService) ActiveProjects(ctx context.Context, p policy.Principal) ([]ActiveProjectRow, error) {
	active := true
	projs, _, err := s.Projects.List(ctx, policy.Narrow(p, policy.KindProject), repository.ProjectQuery{IsActive: &active})
	if err != nil {
		return nil, err
	}
	rows := make([]ActiveProjectRow, 0, len(projs))
	for i := range projs {
		pr := &projs[i]
		rows = append(rows, ActiveProjectRow{
			ID:         pr.ID,
			Name:       pr.Name,
			Department: pr.DepartmentName,
			StartDate:  formatDate(pr.StartDate),
			EndDate:    formatDate(pr.EndDate),
		})
	}
	return rows, nil
}

// EmployeesCSV renders the employee export for the narrowed set. An empty
// set yields a file with only the header row.
func (s *ReportService) EmployeesCSV(ctx context.Context, p policy.Principal) ([]byte, error) {
	emps, _, err := s.Employees.List(ctx, policy.Narrow(p, policy.KindEmployee), repository.EmployeeQuery{})
	if err != nil {
		return nil, err
	}
	rows := make([]export.EmployeeRow, 0, len(emps))
	for i := range emps {
		e := &emps[i]
		dept := ""
		if e.DepartmentName != nil {
			dept = *e.DepartmentName
		}
		rows = append(rows, export.EmployeeRow{
			Name:       e.DisplayName(),
			Department: dept,
			Salary:     e.Salary.String(),
			JobTitle:   e.JobTitle,
		})
	}
	var buf bytes.Buffer
	if err := export.EmployeesCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SalaryXLSX renders the salary workbook, or fails with
// ErrExportUnavailable when no spreadsheet writer is wired.
func (s *ReportService) SalaryXLSX(ctx context.Context, p policy.Principal) ([]byte, error) {
	if s.Sheets == nil {
		return nil, ErrExportUnavailable
	}
	groups, err := s.Employees.SalaryByDepartment(ctx, policy.Narrow(p, policy.KindEmployee))
	if err != nil {
		return nil, err
	}
	rows := make([]export.SalaryRow, 0, len(groups))
	for _, g := range groups {
		dept := ""
		if g.Department != nil {
			dept = *g.Department
		}
		// Float conversion is confined to the spreadsheet format.
		total, _ := g.Total.Float64()
		rows = append(rows, export.SalaryRow{Department: dept, Total: total})
	}
	return s.Sheets.SalaryWorkbook(rows)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
