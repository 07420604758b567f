package repository

import (
	"context"

	"github.com/satriajanaka/erp-backend/internal/domain/entity"
	"github.com/satriajanaka/erp-backend/internal/domain/policy"
)

// UserRepository reads authentication identities. User rows are only ever
// written through EmployeeRepository (nested create/update) or seeding.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

// PrincipalRepository resolves an authenticated user id into the principal
// the policy package evaluates: role plus linked employee profile, if any.
type PrincipalRepository interface {
	GetPrincipal(ctx context.Context, userID int64) (policy.Principal, error)
}
