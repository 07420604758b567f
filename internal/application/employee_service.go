package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
	"github.com/satriajanaka/erp-backend/pkg/helpers"
)

// EmployeeService exposes employee CRUD with the nested-user write flow.
// All reads are narrowed; manager writes are pinned to their own department.
type EmployeeService struct {
	Repo   repository.EmployeeRepository
	Logger *logrus.Logger
}

func NewEmployeeService(repo repository.EmployeeRepository, logger *logrus.Logger) *EmployeeService {
	return &EmployeeService{Repo: repo, Logger: logger}
}

// NewUserInput is the embedded user payload on employee creation. An empty
// Password leaves the account unusable for login.
type NewUserInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Role      entity.Role
	Password  string
}

type CreateEmployeeInput struct {
	User         NewUserInput
	DepartmentID *int64
	Salary       decimal.Decimal
	JobTitle     string
}

// UserPatchInput is the embedded user payload on employee update. A non-nil
// Password is re-hashed before persisting.
type UserPatchInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	Email     *string
	Role      *entity.Role
	Password  *string
}

type UpdateEmployeeInput struct {
	User         *UserPatchInput
	DepartmentID repository.OptionalInt64
	Salary       *decimal.Decimal
	JobTitle     *string
}

func (s *EmployeeService) List(ctx context.Context, p policy.Principal, q repository.EmployeeQuery) ([]entity.Employee, int64, error) {
	return s.Repo.List(ctx, policy.Narrow(p, policy.KindEmployee), q)
}

func (s *EmployeeService) Get(ctx context.Context, p policy.Principal, id int64) (*entity.Employee, error) {
	return s.Repo.GetByID(ctx, policy.Narrow(p, policy.KindEmployee), id)
}

// Create persists the embedded user and the employee atomically. The user
// row is created first; any failure aborts both.
func (s *EmployeeService) Create(ctx context.Context, p policy.Principal, in CreateEmployeeInput) (*entity.Employee, error) {
	if !policy.CanWrite(p, policy.KindEmployee, policy.ActionCreate) {
		return nil, ErrPermissionDenied
	}

	role := in.User.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	e := &entity.Employee{
		User: entity.User{
			Username:  in.User.Username,
			FirstName: in.User.FirstName,
			LastName:  in.User.LastName,
			Email:     in.User.Email,
			Role:      role,
		},
		DepartmentID: policy.PinDepartment(p, in.DepartmentID),
		Salary:       in.Salary,
		JobTitle:     in.JobTitle,
	}
	if in.User.Password != "" {
		hash, err := helpers.HashPassword(in.User.Password)
		if err != nil {
			return nil, err
		}
		e.User.PasswordHash = hash
	}

	if err := s.Repo.CreateWithUser(ctx, e); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"employee_id": e.ID, "user_id": e.User.ID, "by": p.UserID}).Info("employee created")
	return e, nil
}

// Update applies nested user changes and employee fields in one transaction.
// The target must be visible within the principal's narrowed scope, so an
// out-of-scope id surfaces as not-found.
func (s *EmployeeService) Update(ctx context.Context, p policy.Principal, id int64, in UpdateEmployeeInput) (*entity.Employee, error) {
	if !policy.CanWrite(p, policy.KindEmployee, policy.ActionUpdate) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.Repo.GetByID(ctx, policy.Narrow(p, policy.KindEmployee), id); err != nil {
		return nil, err
	}

	patch := repository.EmployeePatch{
		DepartmentID: in.DepartmentID,
		Salary:       in.Salary,
		JobTitle:     in.JobTitle,
	}
	// Managers always land the row in their own department, whatever the
	// request said.
	if p.Role == entity.RoleManager {
		patch.DepartmentID = repository.SetTo(policy.PinDepartment(p, nil))
	}
	if in.User != nil {
		up := &repository.UserPatch{
			Username:  in.User.Username,
			FirstName: in.User.FirstName,
			LastName:  in.User.LastName,
			Email:     in.User.Email,
			Role:      in.User.Role,
		}
		if in.User.Password != nil {
			hash, err := helpers.HashPassword(*in.User.Password)
			if err != nil {
				return nil, err
			}
			up.PasswordHash = &hash
		}
		patch.User = up
	}

	if err := s.Repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	// Re-read unscoped: a manager pinning an employee out of a null
	// department must still receive the updated row back.
	return s.Repo.GetByID(ctx, policy.Scope{Kind: policy.ScopeAll}, id)
}

func (s *EmployeeService) Delete(ctx context.Context, p policy.Principal, id int64) error {
	if !policy.CanWrite(p, policy.KindEmployee, policy.ActionDestroy) {
		return ErrPermissionDenied
	}
	if _, err := s.Repo.GetByID(ctx, policy.Narrow(p, policy.KindEmployee), id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"employee_id": id, "by": p.UserID}).Info("employee deleted")
	return nil
}
