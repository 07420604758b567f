package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestSalaryWorkbook(t *testing.T) {
	rows := []SalaryRow{
		{Department: "Engineering", Total: 14700},
		{Department: "Sales", Total: 8200.50},
	}
	data, err := ExcelWriter{}.SalaryWorkbook(rows)
	if err != nil {
		t.Fatalf("SalaryWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	got, err := f.GetRows("Salary Cost")
	if err != nil {
		t.Fatalf("sheet missing: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}
	if got[0][0] != "Department" || got[0][1] != "Total Salary" {
		t.Fatalf("header = %v", got[0])
	}
	if got[1][0] != "Engineering" || got[1][1] != "14700" {
		t.Fatalf("row 1 = %v", got[1])
	}
	if got[2][0] != "Sales" || got[2][1] != "8200.5" {
		t.Fatalf("row 2 = %v", got[2])
	}
}

func TestSalaryWorkbookEmpty(t *testing.T) {
	data, err := ExcelWriter{}.SalaryWorkbook(nil)
	if err != nil {
		t.Fatalf("SalaryWorkbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()
	got, err := f.GetRows("Salary Cost")
	if err != nil {
		t.Fatalf("sheet missing: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want header only", len(got))
	}
}
