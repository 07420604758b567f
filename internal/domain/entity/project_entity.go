package entity

import "time"

// Project belongs to a department and is deleted together with it.
// The reference is nullable only for the documented manager-without-department
// write path; everywhere else a department is required on create.
// EmployeeIDs carries the many-to-many assignment.
type Project struct {
	ID           int64
	Name         string
	DepartmentID *int64
	// DepartmentName is denormalized for read models; nil when unassigned.
	DepartmentName *string
	EmployeeIDs    []int64
	IsActive       bool
	StartDate      *time.Time
	EndDate        *time.Time
}
