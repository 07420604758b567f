package repository

import (
	"context"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
)

// DepartmentRepository persists departments. Deletes rely on the schema's
// referential actions: employees are detached (SET NULL), projects are
// removed (CASCADE).
type DepartmentRepository interface {
	List(ctx context.Context, q DepartmentQuery) ([]entity.Department, int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Department, error)
	Create(ctx context.Context, d *entity.Department) error
	Update(ctx context.Context, d *entity.Department) error
	Delete(ctx context.Context, id int64) error
}
