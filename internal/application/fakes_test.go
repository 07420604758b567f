package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

// In-memory repositories for service tests. Scope handling mirrors the SQL
// implementations: the scope predicate applies before any other filter and
// the empty scope yields the empty set.

type fakeEmployeeRepo struct {
	rows   []entity.Employee
	nextID int64
}

func (f *fakeEmployeeRepo) visible(scope policy.Scope, e *entity.Employee) bool {
	switch scope.Kind {
	case policy.ScopeAll:
		return true
	case policy.ScopeDepartment:
		return e.DepartmentID != nil && *e.DepartmentID == scope.DepartmentID
	case policy.ScopeSelfUser:
		return e.User.ID == scope.UserID
	default:
		return false
	}
}

func (f *fakeEmployeeRepo) List(_ context.Context, scope policy.Scope, _ repository.EmployeeQuery) ([]entity.Employee, int64, error) {
	out := []entity.Employee{}
	for i := range f.rows {
		if f.visible(scope, &f.rows[i]) {
			out = append(out, f.rows[i])
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, scope policy.Scope, id int64) (*entity.Employee, error) {
	for i := range f.rows {
		if f.rows[i].ID == id && f.visible(scope, &f.rows[i]) {
			e := f.rows[i]
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEmployeeRepo) CreateWithUser(_ context.Context, e *entity.Employee) error {
	f.nextID++
	e.ID = f.nextID
	e.User.ID = f.nextID + 1000
	f.rows = append(f.rows, *e)
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, id int64, patch repository.EmployeePatch) error {
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		e := &f.rows[i]
		if patch.DepartmentID.Present {
			e.DepartmentID = patch.DepartmentID.Value
		}
		if patch.Salary != nil {
			e.Salary = *patch.Salary
		}
		if patch.JobTitle != nil {
			e.JobTitle = *patch.JobTitle
		}
		if u := patch.User; u != nil {
			if u.Username != nil {
				e.User.Username = *u.Username
			}
			if u.FirstName != nil {
				e.User.FirstName = *u.FirstName
			}
			if u.LastName != nil {
				e.User.LastName = *u.LastName
			}
			if u.Email != nil {
				e.User.Email = *u.Email
			}
			if u.Role != nil {
				e.User.Role = *u.Role
			}
			if u.PasswordHash != nil {
				e.User.PasswordHash = *u.PasswordHash
			}
		}
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id int64) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeEmployeeRepo) SalaryByDepartment(_ context.Context, scope policy.Scope) ([]repository.SalaryGroup, error) {
	var order []string
	totals := map[string]decimal.Decimal{}
	names := map[string]*string{}
	for i := range f.rows {
		e := &f.rows[i]
		if !f.visible(scope, e) {
			continue
		}
		key := ""
		if e.DepartmentName != nil {
			key = *e.DepartmentName
		}
		if _, ok := totals[key]; !ok {
			order = append(order, key)
			names[key] = e.DepartmentName
		}
		totals[key] = totals[key].Add(e.Salary)
	}
	out := []repository.SalaryGroup{}
	for _, key := range order {
		out = append(out, repository.SalaryGroup{Department: names[key], Total: totals[key]})
	}
	return out, nil
}

var _ repository.EmployeeRepository = (*fakeEmployeeRepo)(nil)

type fakeProjectRepo struct {
	rows   []entity.Project
	nextID int64
}

func (f *fakeProjectRepo) visible(scope policy.Scope, p *entity.Project) bool {
	switch scope.Kind {
	case policy.ScopeAll:
		return true
	case policy.ScopeDepartment:
		return p.DepartmentID != nil && *p.DepartmentID == scope.DepartmentID
	case policy.ScopeAssigned:
		for _, id := range p.EmployeeIDs {
			if id == scope.EmployeeID {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (f *fakeProjectRepo) List(_ context.Context, scope policy.Scope, q repository.ProjectQuery) ([]entity.Project, int64, error) {
	out := []entity.Project{}
	for i := range f.rows {
		p := &f.rows[i]
		if !f.visible(scope, p) {
			continue
		}
		if q.IsActive != nil && p.IsActive != *q.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, scope policy.Scope, id int64) (*entity.Project, error) {
	for i := range f.rows {
		if f.rows[i].ID == id && f.visible(scope, &f.rows[i]) {
			p := f.rows[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProjectRepo) Create(_ context.Context, p *entity.Project) error {
	f.nextID++
	p.ID = f.nextID
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakeProjectRepo) Update(_ context.Context, id int64, patch repository.ProjectPatch) error {
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		p := &f.rows[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.DepartmentID.Present {
			p.DepartmentID = patch.DepartmentID.Value
		}
		if patch.IsActive != nil {
			p.IsActive = *patch.IsActive
		}
		if patch.StartDate.Present {
			p.StartDate = patch.StartDate.Value
		}
		if patch.EndDate.Present {
			p.EndDate = patch.EndDate.Value
		}
		if patch.EmployeeIDs != nil {
			p.EmployeeIDs = *patch.EmployeeIDs
		}
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.ProjectRepository = (*fakeProjectRepo)(nil)

type fakeUserRepo struct {
	users []entity.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
