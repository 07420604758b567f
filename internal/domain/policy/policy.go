package policy

import "github.com/satriajanaka/erp-backend/internal/domain/entity"

// Package policy centralizes every role decision in the system. Handlers and
// services never compare roles directly; they ask this package for a read
// scope or a write verdict and act on the result.
//
// Reads narrow, writes deny: an out-of-scope collection read yields an empty
// collection (list endpoints are safe to call for any authenticated
// principal), while an out-of-scope write is rejected explicitly.

// Kind identifies the resource family a decision is about.
type Kind string

const (
	KindDepartment Kind = "department"
	KindEmployee   Kind = "employee"
	KindProject    Kind = "project"
	KindReport     Kind = "report"
)

// Action is a mutating operation on a resource.
type Action string

const (
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// Principal is the authenticated identity making a request. EmployeeID and
// DepartmentID come from the linked employee profile and are nil when the
// user has no profile or no department.
type Principal struct {
	UserID       int64
	Role         entity.Role
	EmployeeID   *int64
	DepartmentID *int64
}

// ScopeKind tags the Scope variant.
type ScopeKind int

const (
	// ScopeAll leaves the candidate set unchanged.
	ScopeAll ScopeKind = iota
	// ScopeDepartment restricts to rows of one department.
	ScopeDepartment
	// ScopeSelfUser restricts employees to the row linked to one user.
	ScopeSelfUser
	// ScopeAssigned restricts projects to those an employee is assigned to.
	ScopeAssigned
	// ScopeNone is the empty set.
	ScopeNone
)

// Scope is the narrowed view of a resource collection. Repositories translate
// it mechanically into query predicates; it is never an error value.
type Scope struct {
	Kind         ScopeKind
	DepartmentID int64
	UserID       int64
	EmployeeID   int64
}

func all() Scope                { return Scope{Kind: ScopeAll} }
func none() Scope               { return Scope{Kind: ScopeNone} }
func department(id int64) Scope { return Scope{Kind: ScopeDepartment, DepartmentID: id} }
func selfUser(id int64) Scope   { return Scope{Kind: ScopeSelfUser, UserID: id} }
func assigned(id int64) Scope   { return Scope{Kind: ScopeAssigned, EmployeeID: id} }

// Narrow returns the visible slice of a resource collection for p.
//
// Admins see everything. Managers see their own department, or nothing when
// their department cannot be resolved. Employees see themselves and the
// projects they are assigned to. Departments are readable by everyone.
// Reports narrow like the employee collection they aggregate over.
func Narrow(p Principal, kind Kind) Scope {
	if kind == KindDepartment {
		return all()
	}
	switch p.Role {
	case entity.RoleAdmin:
		return all()
	case entity.RoleManager:
		if p.DepartmentID == nil {
			return none()
		}
		return department(*p.DepartmentID)
	case entity.RoleEmployee:
		switch kind {
		case KindProject:
			if p.EmployeeID == nil {
				return none()
			}
			return assigned(*p.EmployeeID)
		default:
			return selfUser(p.UserID)
		}
	}
	return none()
}

// CanWrite reports whether p may perform a mutating action on kind.
// Reports are read-only for every role; department mutation is admin-only;
// employees and projects are writable by admins and managers.
func CanWrite(p Principal, kind Kind, _ Action) bool {
	switch kind {
	case KindReport:
		return false
	case KindDepartment:
		return p.Role == entity.RoleAdmin
	case KindEmployee, KindProject:
		return p.Role == entity.RoleAdmin || p.Role == entity.RoleManager
	}
	return false
}

// PinDepartment resolves the department a write should land in. Managers are
// pinned to their own department regardless of what the request asked for; a
// manager without a resolvable department writes a null department. Everyone
// else keeps the requested value.
func PinDepartment(p Principal, requested *int64) *int64 {
	if p.Role == entity.RoleManager {
		return p.DepartmentID
	}
	return requested
}
