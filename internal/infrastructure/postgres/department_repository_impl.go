package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

type DepartmentRepository struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

func (r *DepartmentRepository) List(ctx context.Context, q repository.DepartmentQuery) ([]entity.Department, int64, error) {
	c := &cond{}
	if q.Search != "" {
		c.add("name ILIKE $%d", like(q.Search))
	}
	where := c.where()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM departments`+where, c.args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	order := " ORDER BY name ASC"
	switch q.OrderBy {
	case "name":
		order = " ORDER BY name" + direction(q.Desc)
	case "budget":
		order = " ORDER BY budget" + direction(q.Desc) + ", name ASC"
	}

	sql := `SELECT id, name, budget::text FROM departments` + where + order + c.paging(q.Page)
	rows, err := r.pool.Query(ctx, sql, c.args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	out := []entity.Department{}
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Budget); err != nil {
			return nil, 0, mapError(err)
		}
		out = append(out, d)
	}
	return out, total, mapError(rows.Err())
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	d := &entity.Department{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, budget::text FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Budget)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, d *entity.Department) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO departments (name, budget) VALUES ($1, $2) RETURNING id`,
		d.Name, d.Budget.String(),
	).Scan(&d.ID)
	return mapError(err)
}

func (r *DepartmentRepository) Update(ctx context.Context, d *entity.Department) error {
	res, err := r.pool.Exec(ctx,
		`UPDATE departments SET name = $1, budget = $2 WHERE id = $3`,
		d.Name, d.Budget.String(), d.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the department. The schema detaches its employees
// (SET NULL) and removes its projects (CASCADE).
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.DepartmentRepository = (*DepartmentRepository)(nil)
