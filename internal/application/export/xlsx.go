package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SalaryRow is one line of the salary workbook. Total is float only in this
// format; every other surface keeps salaries as exact decimals.
type SalaryRow struct {
	Department string
	Total      float64
}

// SpreadsheetWriter produces the salary workbook. It is wired at startup
// and may be absent; callers must treat a missing writer as a server-side
// capability error, not a crash.
type SpreadsheetWriter interface {
	SalaryWorkbook(rows []SalaryRow) ([]byte, error)
}

// ExcelWriter renders the workbook with excelize.
type ExcelWriter struct{}

const salarySheet = "Salary Cost"

func (ExcelWriter) SalaryWorkbook(rows []SalaryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", salarySheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(salarySheet, "A1", &[]any{"Department", "Total Salary"}); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(salarySheet, cell, &[]any{r.Department, r.Total}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ SpreadsheetWriter = ExcelWriter{}
