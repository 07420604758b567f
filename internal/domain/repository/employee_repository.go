package repository

import (
	"context"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
)

// EmployeeRepository persists employees together with their linked users.
// Read operations take a policy.Scope and must apply it before any other
// predicate, so an out-of-scope id is indistinguishable from a missing one.
type EmployeeRepository interface {
	List(ctx context.Context, scope policy.Scope, q EmployeeQuery) ([]entity.Employee, int64, error)
	GetByID(ctx context.Context, scope policy.Scope, id int64) (*entity.Employee, error)

	// CreateWithUser inserts the user carried in e.User, then the employee,
	// in one transaction. Neither row survives a failure of the other.
	CreateWithUser(ctx context.Context, e *entity.Employee) error

	// Update applies the employee patch and any nested user patch in one
	// transaction.
	Update(ctx context.Context, id int64, patch EmployeePatch) error

	Delete(ctx context.Context, id int64) error

	// SalaryByDepartment groups the scoped employee set by department name
	// and sums salaries exactly. Grouping is over existing rows only;
	// departments with no visible employees produce no group.
	SalaryByDepartment(ctx context.Context, scope policy.Scope) ([]SalaryGroup, error)
}
