package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

// ProjectService exposes project CRUD with employee assignment. Reads are
// narrowed; manager writes are pinned to their own department.
type ProjectService struct {
	Repo   repository.ProjectRepository
	Logger *logrus.Logger
}

func NewProjectService(repo repository.ProjectRepository, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Repo: repo, Logger: logger}
}

type CreateProjectInput struct {
	Name         string
	DepartmentID *int64
	EmployeeIDs  []int64
	IsActive     *bool
	StartDate    *time.Time
	EndDate      *time.Time
}

type UpdateProjectInput struct {
	Name         *string
	DepartmentID repository.OptionalInt64
	EmployeeIDs  *[]int64
	IsActive     *bool
	StartDate    repository.OptionalDate
	EndDate      repository.OptionalDate
}

func (s *ProjectService) List(ctx context.Context, p policy.Principal, q repository.ProjectQuery) ([]entity.Project, int64, error) {
	return s.Repo.List(ctx, policy.Narrow(p, policy.KindProject), q)
}

func (s *ProjectService) Get(ctx context.Context, p policy.Principal, id int64) (*entity.Project, error) {
	return s.Repo.GetByID(ctx, policy.Narrow(p, policy.KindProject), id)
}

func (s *ProjectService) Create(ctx context.Context, p policy.Principal, in CreateProjectInput) (*entity.Project, error) {
	if !policy.CanWrite(p, policy.KindProject, policy.ActionCreate) {
		return nil, ErrPermissionDenied
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	proj := &entity.Project{
		Name:         in.Name,
		DepartmentID: policy.PinDepartment(p, in.DepartmentID),
		EmployeeIDs:  in.EmployeeIDs,
		IsActive:     active,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	if err := s.Repo.Create(ctx, proj); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"project_id": proj.ID, "by": p.UserID}).Info("project created")
	return proj, nil
}

func (s *ProjectService) Update(ctx context.Context, p policy.Principal, id int64, in UpdateProjectInput) (*entity.Project, error) {
	if !policy.CanWrite(p, policy.KindProject, policy.ActionUpdate) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.Repo.GetByID(ctx, policy.Narrow(p, policy.KindProject), id); err != nil {
		return nil, err
	}

	patch := repository.ProjectPatch{
		Name:         in.Name,
		DepartmentID: in.DepartmentID,
		IsActive:     in.IsActive,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		EmployeeIDs:  in.EmployeeIDs,
	}
	if p.Role == entity.RoleManager {
		patch.DepartmentID = repository.SetTo(policy.PinDepartment(p, nil))
	}

	if err := s.Repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, policy.Scope{Kind: policy.ScopeAll}, id)
}

func (s *ProjectService) Delete(ctx context.Context, p policy.Principal, id int64) error {
	if !policy.CanWrite(p, policy.KindProject, policy.ActionDestroy) {
		return ErrPermissionDenied
	}
	if _, err := s.Repo.GetByID(ctx, policy.Narrow(p, policy.KindProject), id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"project_id": id, "by": p.UserID}).Info("project deleted")
	return nil
}
