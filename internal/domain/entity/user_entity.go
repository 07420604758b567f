package entity

import (
	"strings"
	"time"
)

// Role is the single authorization role carried by a user.
// A user has exactly one role at a time.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User is the authentication identity. Authentication fields are opaque to
// the access policy; only Role (and the linked employee profile) matter there.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	// PasswordHash is a bcrypt hash. Empty means the account cannot log in.
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the full name, falling back to the username.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}
	return u.Username
}
