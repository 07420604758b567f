package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

// cond accumulates WHERE clauses with positional placeholders. Each clause
// template carries exactly one %d for its placeholder number.
type cond struct {
	clauses []string
	args    []any
}

func (c *cond) add(tpl string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(tpl, len(c.args)))
}

func (c *cond) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// paging appends LIMIT/OFFSET for the given page, using the next placeholder
// positions after the filter args.
func (c *cond) paging(p repository.Page) string {
	if p.Limit() == 0 {
		return ""
	}
	c.args = append(c.args, p.Limit())
	limit := len(c.args)
	c.args = append(c.args, p.Offset())
	offset := len(c.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", limit, offset)
}

func like(s string) string { return "%" + s + "%" }

func direction(desc bool) string {
	if desc {
		return " DESC"
	}
	return " ASC"
}

// scopeEmployees translates a read scope into predicates over the employee
// alias. Returns false when the scope is the empty set and no query should
// run at all.
func scopeEmployees(c *cond, scope policy.Scope) bool {
	switch scope.Kind {
	case policy.ScopeAll:
	case policy.ScopeDepartment:
		c.add("e.department_id = $%d", scope.DepartmentID)
	case policy.ScopeSelfUser:
		c.add("e.user_id = $%d", scope.UserID)
	default:
		return false
	}
	return true
}

// scopeProjects translates a read scope into predicates over the project
// alias. Returns false for the empty set.
func scopeProjects(c *cond, scope policy.Scope) bool {
	switch scope.Kind {
	case policy.ScopeAll:
	case policy.ScopeDepartment:
		c.add("p.department_id = $%d", scope.DepartmentID)
	case policy.ScopeAssigned:
		c.add("EXISTS (SELECT 1 FROM project_employees sa WHERE sa.project_id = p.id AND sa.employee_id = $%d)", scope.EmployeeID)
	default:
		return false
	}
	return true
}

// mapError folds driver errors into the repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", repository.ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return err
}
