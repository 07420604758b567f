package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
	"github.com/satriajanaka/erp-backend/pkg/helpers"
)

func ptr(v int64) *int64 { return &v }

func strp(s string) *string { return &s }

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(nullWriter{})
	return l
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

func seedEmployees(repo *fakeEmployeeRepo) {
	eng := "Engineering"
	sales := "Sales"
	repo.rows = []entity.Employee{
		{ID: 1, User: entity.User{ID: 101, Username: "alice", Role: entity.RoleManager},
			DepartmentID: ptr(7), DepartmentName: &eng, Salary: decimal.RequireFromString("100.10")},
		{ID: 2, User: entity.User{ID: 102, Username: "bob", Role: entity.RoleEmployee},
			DepartmentID: ptr(7), DepartmentName: &eng, Salary: decimal.RequireFromString("200.20")},
		{ID: 3, User: entity.User{ID: 103, Username: "carol", Role: entity.RoleEmployee},
			DepartmentID: ptr(8), DepartmentName: &sales, Salary: decimal.RequireFromString("300.00")},
	}
	repo.nextID = 3
}

func TestEmployeeCreateDeniedForEmployeeRole(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{}, testLogger())
	p := policy.Principal{UserID: 102, Role: entity.RoleEmployee, EmployeeID: ptr(2)}

	_, err := svc.Create(context.Background(), p, CreateEmployeeInput{User: NewUserInput{Username: "x"}})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestEmployeeCreateManagerPinsDepartment(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo, testLogger())
	manager := policy.Principal{UserID: 101, Role: entity.RoleManager, EmployeeID: ptr(1), DepartmentID: ptr(7)}

	// The requested department 99 must be ignored.
	e, err := svc.Create(context.Background(), manager, CreateEmployeeInput{
		User:         NewUserInput{Username: "dave"},
		DepartmentID: ptr(99),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.DepartmentID == nil || *e.DepartmentID != 7 {
		t.Fatalf("department = %v, want pinned 7", e.DepartmentID)
	}
	if e.User.Role != entity.RoleEmployee {
		t.Fatalf("role = %s, want default EMPLOYEE", e.User.Role)
	}
}

func TestEmployeeCreateHashesPassword(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo, testLogger())
	admin := policy.Principal{UserID: 1, Role: entity.RoleAdmin}

	e, err := svc.Create(context.Background(), admin, CreateEmployeeInput{
		User: NewUserInput{Username: "dave", Password: "secret123"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.User.PasswordHash == "" || e.User.PasswordHash == "secret123" {
		t.Fatalf("password stored without hashing")
	}
	if !helpers.CompareHashAndPassword(e.User.PasswordHash, "secret123") {
		t.Fatalf("stored hash does not verify")
	}
}

func TestEmployeeCreateWithoutPasswordCannotLogin(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo, testLogger())
	admin := policy.Principal{UserID: 1, Role: entity.RoleAdmin}

	e, err := svc.Create(context.Background(), admin, CreateEmployeeInput{User: NewUserInput{Username: "ghost"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.User.PasswordHash != "" {
		t.Fatalf("hash = %q, want empty for passwordless account", e.User.PasswordHash)
	}
}

func TestEmployeeGetOutOfScopeIsNotFound(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployees(repo)
	svc := NewEmployeeService(repo, testLogger())
	manager := policy.Principal{UserID: 101, Role: entity.RoleManager, EmployeeID: ptr(1), DepartmentID: ptr(7)}

	// Row 3 exists but belongs to another department.
	_, err := svc.Get(context.Background(), manager, 3)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEmployeeListNarrowsPerRole(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployees(repo)
	svc := NewEmployeeService(repo, testLogger())

	admin := policy.Principal{UserID: 1, Role: entity.RoleAdmin}
	if got, total, _ := svc.List(context.Background(), admin, repository.EmployeeQuery{}); len(got) != 3 || total != 3 {
		t.Fatalf("admin sees %d/%d, want 3/3", len(got), total)
	}

	manager := policy.Principal{UserID: 101, Role: entity.RoleManager, EmployeeID: ptr(1), DepartmentID: ptr(7)}
	if got, _, _ := svc.List(context.Background(), manager, repository.EmployeeQuery{}); len(got) != 2 {
		t.Fatalf("manager sees %d, want 2", len(got))
	}

	// An employee sees only the row linked to their own user.
	self := policy.Principal{UserID: 102, Role: entity.RoleEmployee, EmployeeID: ptr(2), DepartmentID: ptr(7)}
	got, _, _ := svc.List(context.Background(), self, repository.EmployeeQuery{})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("employee sees %+v, want only own row", got)
	}

	// A departmentless manager sees the empty set, not an error.
	orphan := policy.Principal{UserID: 104, Role: entity.RoleManager}
	if got, total, err := svc.List(context.Background(), orphan, repository.EmployeeQuery{}); err != nil || len(got) != 0 || total != 0 {
		t.Fatalf("orphan manager got %d rows, err=%v, want empty and nil", len(got), err)
	}
}

func TestEmployeeUpdateManagerOverridesDepartment(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployees(repo)
	svc := NewEmployeeService(repo, testLogger())
	manager := policy.Principal{UserID: 101, Role: entity.RoleManager, EmployeeID: ptr(1), DepartmentID: ptr(7)}

	// The patch tries to move bob to department 8; the write is pinned back.
	e, err := svc.Update(context.Background(), manager, 2, UpdateEmployeeInput{
		DepartmentID: repository.SetTo(ptr(8)),
		JobTitle:     strp("Senior Engineer"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if e.DepartmentID == nil || *e.DepartmentID != 7 {
		t.Fatalf("department = %v, want pinned 7", e.DepartmentID)
	}
	if e.JobTitle != "Senior Engineer" {
		t.Fatalf("job title = %q", e.JobTitle)
	}
}

func TestEmployeeUpdateRehashesPassword(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployees(repo)
	svc := NewEmployeeService(repo, testLogger())
	admin := policy.Principal{UserID: 1, Role: entity.RoleAdmin}

	e, err := svc.Update(context.Background(), admin, 2, UpdateEmployeeInput{
		User: &UserPatchInput{Password: strp("newsecret")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !helpers.CompareHashAndPassword(e.User.PasswordHash, "newsecret") {
		t.Fatalf("new password does not verify")
	}
}

func TestEmployeeDeleteOutOfScopeIsNotFound(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployees(repo)
	svc := NewEmployeeService(repo, testLogger())
	manager := policy.Principal{UserID: 101, Role: entity.RoleManager, EmployeeID: ptr(1), DepartmentID: ptr(7)}

	if err := svc.Delete(context.Background(), manager, 3); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(repo.rows) != 3 {
		t.Fatalf("row count changed to %d", len(repo.rows))
	}

	if err := svc.Delete(context.Background(), manager, 2); err != nil {
		t.Fatalf("in-scope delete: %v", err)
	}
	if len(repo.rows) != 2 {
		t.Fatalf("row not deleted")
	}
}
