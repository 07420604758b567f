package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectCols = `
	p.id, p.name, p.department_id, d.name, p.is_active, p.start_date, p.end_date,
	COALESCE(array_agg(pe.employee_id) FILTER (WHERE pe.employee_id IS NOT NULL), '{}')`

const projectFrom = `
	FROM projects p
	LEFT JOIN departments d ON d.id = p.department_id
	LEFT JOIN project_employees pe ON pe.project_id = p.id`

const projectGroup = ` GROUP BY p.id, d.name`

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	if err := row.Scan(
		&p.ID, &p.Name, &p.DepartmentID, &p.DepartmentName,
		&p.IsActive, &p.StartDate, &p.EndDate, &p.EmployeeIDs,
	); err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func projectFilters(c *cond, q repository.ProjectQuery) {
	if q.Department != "" {
		c.add("d.name ILIKE $%d", like(q.Department))
	}
	if q.IsActive != nil {
		c.add("p.is_active = $%d", *q.IsActive)
	}
	if q.Search != "" {
		s := like(q.Search)
		c.args = append(c.args, s)
		n := len(c.args)
		c.clauses = append(c.clauses, fmt.Sprintf("(p.name ILIKE $%d OR d.name ILIKE $%d)", n, n))
	}
}

func (r *ProjectRepository) List(ctx context.Context, scope policy.Scope, q repository.ProjectQuery) ([]entity.Project, int64, error) {
	c := &cond{}
	if !scopeProjects(c, scope) {
		return []entity.Project{}, 0, nil
	}
	projectFilters(c, q)
	where := c.where()

	// The assignment join is only needed for the aggregated column, so the
	// count runs without it.
	var total int64
	countSQL := `SELECT count(*) FROM projects p LEFT JOIN departments d ON d.id = p.department_id` + where
	if err := r.pool.QueryRow(ctx, countSQL, c.args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	order := " ORDER BY p.id ASC"
	switch q.OrderBy {
	case "name":
		order = " ORDER BY p.name" + direction(q.Desc) + ", p.id ASC"
	case "start_date":
		order = " ORDER BY p.start_date" + direction(q.Desc) + ", p.id ASC"
	case "end_date":
		order = " ORDER BY p.end_date" + direction(q.Desc) + ", p.id ASC"
	}

	sql := `SELECT` + projectCols + projectFrom + where + projectGroup + order + c.paging(q.Page)
	rows, err := r.pool.Query(ctx, sql, c.args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	out := []entity.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, mapError(rows.Err())
}

func (r *ProjectRepository) GetByID(ctx context.Context, scope policy.Scope, id int64) (*entity.Project, error) {
	c := &cond{}
	if !scopeProjects(c, scope) {
		return nil, repository.ErrNotFound
	}
	c.add("p.id = $%d", id)
	sql := `SELECT` + projectCols + projectFrom + c.where() + projectGroup
	return scanProject(r.pool.QueryRow(ctx, sql, c.args...))
}

// Create inserts the project and its assignment rows in one transaction.
func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
		INSERT INTO projects (name, department_id, is_active, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.Name, p.DepartmentID, p.IsActive, p.StartDate, p.EndDate).Scan(&p.ID); err != nil {
		return mapError(err)
	}

	if len(p.EmployeeIDs) > 0 {
		if err := insertAssignments(ctx, tx, p.ID, p.EmployeeIDs); err != nil {
			return err
		}
	}

	if p.DepartmentID != nil {
		if err := tx.QueryRow(ctx, `SELECT name FROM departments WHERE id = $1`, *p.DepartmentID).
			Scan(&p.DepartmentName); err != nil {
			return mapError(err)
		}
	}

	return mapError(tx.Commit(ctx))
}

// Update applies the patch; a non-nil EmployeeIDs replaces the assignment
// set atomically with the project row.
func (r *ProjectRepository) Update(ctx context.Context, id int64, patch repository.ProjectPatch) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sets := []string{}
	args := []any{}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.DepartmentID.Present {
		set("department_id", patch.DepartmentID.Value)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}
	if patch.StartDate.Present {
		set("start_date", patch.StartDate.Value)
	}
	if patch.EndDate.Present {
		set("end_date", patch.EndDate.Value)
	}
	if len(sets) > 0 {
		args = append(args, id)
		sql := `UPDATE projects SET ` + strings.Join(sets, ", ") + fmt.Sprintf(" WHERE id = $%d", len(args))
		res, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return mapError(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
	}

	if patch.EmployeeIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM project_employees WHERE project_id = $1`, id); err != nil {
			return mapError(err)
		}
		if len(*patch.EmployeeIDs) > 0 {
			if err := insertAssignments(ctx, tx, id, *patch.EmployeeIDs); err != nil {
				return err
			}
		}
	}

	return mapError(tx.Commit(ctx))
}

func insertAssignments(ctx context.Context, tx pgx.Tx, projectID int64, employeeIDs []int64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO project_employees (project_id, employee_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, projectID, employeeIDs)
	return mapError(err)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
