package export

import (
	"encoding/csv"
	"io"
)

// EmployeeRow is one line of the employee export. Department is already
// blank for employees without one.
type EmployeeRow struct {
	Name       string
	Department string
	Salary     string
	JobTitle   string
}

var employeeHeader = []string{"Employee", "Department", "Salary", "Job Title"}

// EmployeesCSV writes the employee export. The header row is always
// written, so an empty visible set still yields a valid file.
func EmployeesCSV(w io.Writer, rows []EmployeeRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(employeeHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Name, r.Department, r.Salary, r.JobTitle}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
