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

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeCols = `
	e.id, e.department_id, d.name, e.salary::text, COALESCE(e.job_title, ''),
	u.id, u.username, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
	COALESCE(u.email, ''), u.role, u.created_at, u.updated_at`

const employeeFrom = `
	FROM employees e
	JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	e := &entity.Employee{}
	if err := row.Scan(
		&e.ID, &e.DepartmentID, &e.DepartmentName, &e.Salary, &e.JobTitle,
		&e.User.ID, &e.User.Username, &e.User.FirstName, &e.User.LastName,
		&e.User.Email, &e.User.Role, &e.User.CreatedAt, &e.User.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

func employeeFilters(c *cond, q repository.EmployeeQuery) {
	if q.Department != "" {
		c.add("d.name ILIKE $%d", like(q.Department))
	}
	if q.MinSalary != nil {
		c.add("e.salary >= $%d", q.MinSalary.String())
	}
	if q.MaxSalary != nil {
		c.add("e.salary <= $%d", q.MaxSalary.String())
	}
	if q.JobTitle != "" {
		c.add("e.job_title ILIKE $%d", like(q.JobTitle))
	}
	if q.Search != "" {
		s := like(q.Search)
		c.args = append(c.args, s)
		n := len(c.args)
		c.clauses = append(c.clauses, fmt.Sprintf(
			"(u.username ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR e.job_title ILIKE $%d)",
			n, n, n, n))
	}
}

func (r *EmployeeRepository) List(ctx context.Context, scope policy.Scope, q repository.EmployeeQuery) ([]entity.Employee, int64, error) {
	c := &cond{}
	if !scopeEmployees(c, scope) {
		return []entity.Employee{}, 0, nil
	}
	employeeFilters(c, q)
	where := c.where()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*)`+employeeFrom+where, c.args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	order := " ORDER BY e.id ASC"
	switch q.OrderBy {
	case "salary":
		order = " ORDER BY e.salary" + direction(q.Desc) + ", e.id ASC"
	case "username":
		order = " ORDER BY u.username" + direction(q.Desc)
	}

	sql := `SELECT` + employeeCols + employeeFrom + where + order + c.paging(q.Page)
	rows, err := r.pool.Query(ctx, sql, c.args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	out := []entity.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *e)
	}
	return out, total, mapError(rows.Err())
}

func (r *EmployeeRepository) GetByID(ctx context.Context, scope policy.Scope, id int64) (*entity.Employee, error) {
	c := &cond{}
	if !scopeEmployees(c, scope) {
		return nil, repository.ErrNotFound
	}
	c.add("e.id = $%d", id)
	return scanEmployee(r.pool.QueryRow(ctx, `SELECT`+employeeCols+employeeFrom+c.where(), c.args...))
}

// CreateWithUser inserts the linked user first, then the employee, in one
// transaction. A failure on either insert leaves no rows behind.
func (r *EmployeeRepository) CreateWithUser(ctx context.Context, e *entity.Employee) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	u := &e.User
	if err := tx.QueryRow(ctx, `
		INSERT INTO users (username, first_name, last_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id, created_at, updated_at
	`, u.Username, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapError(err)
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO employees (user_id, department_id, salary, job_title)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.ID, e.DepartmentID, e.Salary.String(), e.JobTitle).Scan(&e.ID); err != nil {
		return mapError(err)
	}

	if e.DepartmentID != nil {
		if err := tx.QueryRow(ctx, `SELECT name FROM departments WHERE id = $1`, *e.DepartmentID).
			Scan(&e.DepartmentName); err != nil {
			return mapError(err)
		}
	}

	return mapError(tx.Commit(ctx))
}

// Update applies the employee patch and any nested user patch in one
// transaction.
func (r *EmployeeRepository) Update(ctx context.Context, id int64, patch repository.EmployeePatch) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID int64
	if err := tx.QueryRow(ctx, `SELECT user_id FROM employees WHERE id = $1`, id).Scan(&userID); err != nil {
		return mapError(err)
	}

	if !patch.User.Empty() {
		sets, args := userPatchSets(patch.User)
		args = append(args, userID)
		sql := `UPDATE users SET ` + strings.Join(sets, ", ") +
			fmt.Sprintf(", updated_at = now() WHERE id = $%d", len(args))
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return mapError(err)
		}
	}

	sets := []string{}
	args := []any{}
	if patch.DepartmentID.Present {
		args = append(args, patch.DepartmentID.Value)
		sets = append(sets, fmt.Sprintf("department_id = $%d", len(args)))
	}
	if patch.Salary != nil {
		args = append(args, patch.Salary.String())
		sets = append(sets, fmt.Sprintf("salary = $%d", len(args)))
	}
	if patch.JobTitle != nil {
		args = append(args, *patch.JobTitle)
		sets = append(sets, fmt.Sprintf("job_title = $%d", len(args)))
	}
	if len(sets) > 0 {
		args = append(args, id)
		sql := `UPDATE employees SET ` + strings.Join(sets, ", ") + fmt.Sprintf(" WHERE id = $%d", len(args))
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return mapError(err)
		}
	}

	return mapError(tx.Commit(ctx))
}

func userPatchSets(p *repository.UserPatch) ([]string, []any) {
	sets := []string{}
	args := []any{}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Username != nil {
		set("username", *p.Username)
	}
	if p.FirstName != nil {
		set("first_name", *p.FirstName)
	}
	if p.LastName != nil {
		set("last_name", *p.LastName)
	}
	if p.Email != nil {
		set("email", *p.Email)
	}
	if p.Role != nil {
		set("role", *p.Role)
	}
	if p.PasswordHash != nil {
		set("password_hash", *p.PasswordHash)
	}
	return sets, args
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SalaryByDepartment groups the scoped employee set by department name and
// sums salaries in SQL, where NUMERIC arithmetic is exact.
func (r *EmployeeRepository) SalaryByDepartment(ctx context.Context, scope policy.Scope) ([]repository.SalaryGroup, error) {
	c := &cond{}
	if !scopeEmployees(c, scope) {
		return []repository.SalaryGroup{}, nil
	}
	sql := `
		SELECT d.name, COALESCE(SUM(e.salary), 0)::text
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id` +
		c.where() + `
		GROUP BY d.name
		ORDER BY d.name`
	rows, err := r.pool.Query(ctx, sql, c.args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []repository.SalaryGroup{}
	for rows.Next() {
		var g repository.SalaryGroup
		if err := rows.Scan(&g.Department, &g.Total); err != nil {
			return nil, mapError(err)
		}
		out = append(out, g)
	}
	return out, mapError(rows.Err())
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)
