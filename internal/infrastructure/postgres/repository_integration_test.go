//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

// Run with: go test -tags integration ./internal/infrastructure/postgres/
// TEST_DATABASE_URL must point at a database with the migrations applied.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := NewPool(context.Background(), dsn, 4, 1, time.Hour)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func uniq(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func all() policy.Scope { return policy.Scope{Kind: policy.ScopeAll} }

func TestDepartmentDeleteCascadeAsymmetry(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	depts := NewDepartmentRepository(pool)
	emps := NewEmployeeRepository(pool)
	projs := NewProjectRepository(pool)

	dept := &entity.Department{Name: uniq("dept"), Budget: decimal.RequireFromString("1000.00")}
	if err := depts.Create(ctx, dept); err != nil {
		t.Fatalf("create department: %v", err)
	}

	emp := &entity.Employee{
		User:         entity.User{Username: uniq("user"), Role: entity.RoleEmployee},
		DepartmentID: &dept.ID,
		Salary:       decimal.RequireFromString("100.10"),
		JobTitle:     "Tester",
	}
	if err := emps.CreateWithUser(ctx, emp); err != nil {
		t.Fatalf("create employee: %v", err)
	}

	proj := &entity.Project{
		Name:         uniq("proj"),
		DepartmentID: &dept.ID,
		IsActive:     true,
		EmployeeIDs:  []int64{emp.ID},
	}
	if err := projs.Create(ctx, proj); err != nil {
		t.Fatalf("create project: %v", err)
	}

	if err := depts.Delete(ctx, dept.ID); err != nil {
		t.Fatalf("delete department: %v", err)
	}

	// Employees are detached, not deleted.
	got, err := emps.GetByID(ctx, all(), emp.ID)
	if err != nil {
		t.Fatalf("employee vanished: %v", err)
	}
	if got.DepartmentID != nil {
		t.Fatalf("employee department = %v, want NULL", *got.DepartmentID)
	}

	// Projects go down with the department, assignments with them.
	if _, err := projs.GetByID(ctx, all(), proj.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("project err = %v, want ErrNotFound", err)
	}
}

func TestCreateWithUserRollsBackOnFailure(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	emps := NewEmployeeRepository(pool)
	username := uniq("dupe")

	first := &entity.Employee{User: entity.User{Username: username, Role: entity.RoleEmployee}}
	if err := emps.CreateWithUser(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	var before int64
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&before); err != nil {
		t.Fatalf("count: %v", err)
	}

	second := &entity.Employee{User: entity.User{Username: username, Role: entity.RoleEmployee}}
	if err := emps.CreateWithUser(ctx, second); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate err = %v, want ErrDuplicate", err)
	}

	var after int64
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&after); err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Fatalf("user rows leaked: %d -> %d", before, after)
	}
}

func TestScopedReadsHitTheEmptySet(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	emps := NewEmployeeRepository(pool)
	rows, total, err := emps.List(ctx, policy.Scope{Kind: policy.ScopeNone}, repository.EmployeeQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 || total != 0 {
		t.Fatalf("empty scope returned %d rows", len(rows))
	}
}
