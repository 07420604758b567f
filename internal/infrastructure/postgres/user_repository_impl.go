package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userCols = `id, username, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(email, ''), COALESCE(password_hash, ''), role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName,
		&u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username = $1`, username))
}

// GetPrincipal resolves a user id into the policy principal: role plus the
// linked employee profile's id and department, when present.
func (r *UserRepository) GetPrincipal(ctx context.Context, userID int64) (policy.Principal, error) {
	p := policy.Principal{}
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.role, e.id, e.department_id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id
		WHERE u.id = $1
	`, userID).Scan(&p.UserID, &p.Role, &p.EmployeeID, &p.DepartmentID)
	if err != nil {
		return policy.Principal{}, mapError(err)
	}
	return p, nil
}

var (
	_ repository.UserRepository      = (*UserRepository)(nil)
	_ repository.PrincipalRepository = (*UserRepository)(nil)
)
