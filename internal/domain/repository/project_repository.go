package repository

import (
	"context"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
)

// ProjectRepository persists projects and their employee assignments.
// Read operations take a policy.Scope, applied before any other predicate.
type ProjectRepository interface {
	List(ctx context.Context, scope policy.Scope, q ProjectQuery) ([]entity.Project, int64, error)
	GetByID(ctx context.Context, scope policy.Scope, id int64) (*entity.Project, error)

	// Create inserts the project and its assignment rows in one transaction.
	Create(ctx context.Context, p *entity.Project) error

	// Update applies the patch; a non-nil EmployeeIDs replaces the whole
	// assignment set atomically with the project row.
	Update(ctx context.Context, id int64, patch ProjectPatch) error

	Delete(ctx context.Context, id int64) error
}
