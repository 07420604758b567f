package entity

import "github.com/shopspring/decimal"

// Employee is the HR profile linked one-to-one with a User. The department
// reference is nullable; it is cleared when the department is deleted.
type Employee struct {
	ID           int64
	User         User
	DepartmentID *int64
	// DepartmentName is denormalized for read models; nil when unassigned.
	DepartmentName *string
	Salary         decimal.Decimal
	JobTitle       string
}

// DisplayName is the employee's visible identity, derived from the linked user.
func (e *Employee) DisplayName() string {
	return e.User.DisplayName()
}
