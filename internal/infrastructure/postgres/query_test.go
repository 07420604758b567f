package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

func TestCondBuildsNumberedPlaceholders(t *testing.T) {
	c := &cond{}
	c.add("e.department_id = $%d", int64(7))
	c.add("e.salary >= $%d", "100")

	want := " WHERE e.department_id = $1 AND e.salary >= $2"
	if got := c.where(); got != want {
		t.Fatalf("where = %q, want %q", got, want)
	}
	if len(c.args) != 2 {
		t.Fatalf("args = %v", c.args)
	}
}

func TestCondEmptyWhere(t *testing.T) {
	c := &cond{}
	if got := c.where(); got != "" {
		t.Fatalf("where = %q, want empty", got)
	}
}

func TestCondPagingContinuesNumbering(t *testing.T) {
	c := &cond{}
	c.add("e.department_id = $%d", int64(7))

	got := c.paging(repository.Page{Number: 3, Size: 20})
	if got != " LIMIT $2 OFFSET $3" {
		t.Fatalf("paging = %q", got)
	}
	if c.args[1] != 20 || c.args[2] != 40 {
		t.Fatalf("paging args = %v, want limit 20 offset 40", c.args[1:])
	}

	// Reports disable paging entirely.
	c2 := &cond{}
	if got := c2.paging(repository.Page{}); got != "" {
		t.Fatalf("unpaged = %q, want empty", got)
	}
}

func TestScopeEmployees(t *testing.T) {
	c := &cond{}
	if !scopeEmployees(c, policy.Scope{Kind: policy.ScopeAll}) {
		t.Fatalf("ScopeAll rejected")
	}
	if c.where() != "" {
		t.Fatalf("ScopeAll added predicates: %q", c.where())
	}

	c = &cond{}
	if !scopeEmployees(c, policy.Scope{Kind: policy.ScopeDepartment, DepartmentID: 7}) {
		t.Fatalf("ScopeDepartment rejected")
	}
	if c.where() != " WHERE e.department_id = $1" {
		t.Fatalf("department scope = %q", c.where())
	}

	c = &cond{}
	if !scopeEmployees(c, policy.Scope{Kind: policy.ScopeSelfUser, UserID: 4}) {
		t.Fatalf("ScopeSelfUser rejected")
	}
	if c.where() != " WHERE e.user_id = $1" {
		t.Fatalf("self scope = %q", c.where())
	}

	// The empty set means no query at all.
	if scopeEmployees(&cond{}, policy.Scope{Kind: policy.ScopeNone}) {
		t.Fatalf("ScopeNone accepted")
	}
}

func TestScopeProjects(t *testing.T) {
	c := &cond{}
	if !scopeProjects(c, policy.Scope{Kind: policy.ScopeAssigned, EmployeeID: 20}) {
		t.Fatalf("ScopeAssigned rejected")
	}
	if c.where() != " WHERE EXISTS (SELECT 1 FROM project_employees sa WHERE sa.project_id = p.id AND sa.employee_id = $1)" {
		t.Fatalf("assigned scope = %q", c.where())
	}
	if scopeProjects(&cond{}, policy.Scope{Kind: policy.ScopeNone}) {
		t.Fatalf("ScopeNone accepted")
	}
}

func TestMapError(t *testing.T) {
	if got := mapError(pgx.ErrNoRows); !errors.Is(got, repository.ErrNotFound) {
		t.Fatalf("no rows mapped to %v", got)
	}
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	if got := mapError(dup); !errors.Is(got, repository.ErrDuplicate) {
		t.Fatalf("unique violation mapped to %v", got)
	}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "employees_department_id_fkey"}
	if got := mapError(fk); !errors.Is(got, repository.ErrInvalidReference) {
		t.Fatalf("fk violation mapped to %v", got)
	}
	plain := errors.New("boom")
	if got := mapError(plain); got != plain {
		t.Fatalf("unrelated error rewritten to %v", got)
	}
	if mapError(nil) != nil {
		t.Fatalf("nil error rewritten")
	}
}
