package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

// DepartmentService exposes department CRUD. Reads are open to every
// authenticated principal; mutations are admin-only (enforced via policy).
type DepartmentService struct {
	Repo   repository.DepartmentRepository
	Logger *logrus.Logger
}

func NewDepartmentService(repo repository.DepartmentRepository, logger *logrus.Logger) *DepartmentService {
	return &DepartmentService{Repo: repo, Logger: logger}
}

type DepartmentInput struct {
	Name   string
	Budget decimal.Decimal
}

type DepartmentPatch struct {
	Name   *string
	Budget *decimal.Decimal
}

func (s *DepartmentService) List(ctx context.Context, p policy.Principal, q repository.DepartmentQuery) ([]entity.Department, int64, error) {
	if policy.Narrow(p, policy.KindDepartment).Kind == policy.ScopeNone {
		return []entity.Department{}, 0, nil
	}
	return s.Repo.List(ctx, q)
}

func (s *DepartmentService) Get(ctx context.Context, p policy.Principal, id int64) (*entity.Department, error) {
	if policy.Narrow(p, policy.KindDepartment).Kind == policy.ScopeNone {
		return nil, repository.ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, p policy.Principal, in DepartmentInput) (*entity.Department, error) {
	if !policy.CanWrite(p, policy.KindDepartment, policy.ActionCreate) {
		return nil, ErrPermissionDenied
	}
	d := &entity.Department{Name: in.Name, Budget: in.Budget}
	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"department_id": d.ID, "by": p.UserID}).Info("department created")
	return d, nil
}

func (s *DepartmentService) Update(ctx context.Context, p policy.Principal, id int64, patch DepartmentPatch) (*entity.Department, error) {
	if !policy.CanWrite(p, policy.KindDepartment, policy.ActionUpdate) {
		return nil, ErrPermissionDenied
	}
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Budget != nil {
		d.Budget = *patch.Budget
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the department; its employees are detached while its
// projects are removed with it.
func (s *DepartmentService) Delete(ctx context.Context, p policy.Principal, id int64) error {
	if !policy.CanWrite(p, policy.KindDepartment, policy.ActionDestroy) {
		return ErrPermissionDenied
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"department_id": id, "by": p.UserID}).Info("department deleted")
	return nil
}
