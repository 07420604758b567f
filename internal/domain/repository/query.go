package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
)

// Page describes list pagination. A Size of zero or less disables paging
// (used by reports, which aggregate over the whole narrowed set).
type Page struct {
	Number int
	Size   int
}

// Limit returns the SQL limit, or 0 when paging is disabled.
func (p Page) Limit() int {
	if p.Size <= 0 {
		return 0
	}
	return p.Size
}

// Offset returns the SQL offset for the current page.
func (p Page) Offset() int {
	if p.Size <= 0 {
		return 0
	}
	n := p.Number
	if n < 1 {
		n = 1
	}
	return (n - 1) * p.Size
}

// DepartmentQuery filters and orders the department collection.
type DepartmentQuery struct {
	Search  string // substring on name, case-insensitive
	OrderBy string // "name" or "budget"
	Desc    bool
	Page    Page
}

// EmployeeQuery filters and orders the employee collection.
type EmployeeQuery struct {
	Department string // substring on department name, case-insensitive
	MinSalary  *decimal.Decimal
	MaxSalary  *decimal.Decimal
	JobTitle   string // substring, case-insensitive
	Search     string // username, first/last name, job title
	OrderBy    string // "salary" or "username"
	Desc       bool
	Page       Page
}

// ProjectQuery filters and orders the project collection.
type ProjectQuery struct {
	Department string // substring on department name, case-insensitive
	IsActive   *bool
	Search     string // project name, department name
	OrderBy    string // "name", "start_date" or "end_date"
	Desc       bool
	Page       Page
}

// OptionalInt64 distinguishes a field that was absent from one explicitly
// set to null. Needed for nullable references in partial updates.
type OptionalInt64 struct {
	Present bool
	Value   *int64
}

// SetTo returns an OptionalInt64 holding v (which may be nil).
func SetTo(v *int64) OptionalInt64 { return OptionalInt64{Present: true, Value: v} }

// OptionalDate is OptionalInt64's shape for nullable date columns.
type OptionalDate struct {
	Present bool
	Value   *time.Time
}

// UserPatch applies partial updates to a linked user row. A non-nil
// PasswordHash replaces the stored hash (services hash before building it).
type UserPatch struct {
	Username     *string
	FirstName    *string
	LastName     *string
	Email        *string
	Role         *entity.Role
	PasswordHash *string
}

// Empty reports whether the patch changes nothing.
func (p *UserPatch) Empty() bool {
	return p == nil || (p.Username == nil && p.FirstName == nil && p.LastName == nil &&
		p.Email == nil && p.Role == nil && p.PasswordHash == nil)
}

// EmployeePatch applies partial updates to an employee and, optionally, its
// linked user inside the same transaction.
type EmployeePatch struct {
	DepartmentID OptionalInt64
	Salary       *decimal.Decimal
	JobTitle     *string
	User         *UserPatch
}

// ProjectPatch applies partial updates to a project. A non-nil EmployeeIDs
// replaces the whole assignment set.
type ProjectPatch struct {
	Name         *string
	DepartmentID OptionalInt64
	IsActive     *bool
	StartDate    OptionalDate
	EndDate      OptionalDate
	EmployeeIDs  *[]int64
}

// SalaryGroup is one row of the salary-cost-per-department aggregate.
// Department is nil for employees without a department.
type SalaryGroup struct {
	Department *string
	Total      decimal.Decimal
}
