package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/satriajanaka/erp-backend/config"
	"github.com/satriajanaka/erp-backend/pkg/helpers"
)

// Seeds a development database with an admin account plus a manager that
// owns a department, so role-scoped behavior can be exercised right away.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminID := seedUser(db, "admin", "ADMIN", "admin123")
	fmt.Printf("seeded admin: id=%d username=admin password=admin123\n", adminID)

	var deptID int64
	if err := db.QueryRow(`
		INSERT INTO departments (name, budget) VALUES ('Engineering', 500000.00)
		ON CONFLICT (name) DO UPDATE SET budget = EXCLUDED.budget
		RETURNING id
	`).Scan(&deptID); err != nil {
		log.Fatalf("failed to seed department: %v", err)
	}
	fmt.Printf("seeded department: id=%d name=Engineering\n", deptID)

	managerID := seedUser(db, "manager", "MANAGER", "manager123")
	var managerEmpID int64
	if err := db.QueryRow(`
		INSERT INTO employees (user_id, department_id, salary, job_title)
		VALUES ($1, $2, 9500.00, 'Engineering Manager')
		ON CONFLICT (user_id) DO UPDATE SET department_id = EXCLUDED.department_id
		RETURNING id
	`, managerID, deptID).Scan(&managerEmpID); err != nil {
		log.Fatalf("failed to seed manager profile: %v", err)
	}
	fmt.Printf("seeded manager: user=%d employee=%d username=manager password=manager123\n", managerID, managerEmpID)

	staffID := seedUser(db, "jdoe", "EMPLOYEE", "employee123")
	var staffEmpID int64
	if err := db.QueryRow(`
		INSERT INTO employees (user_id, department_id, salary, job_title)
		VALUES ($1, $2, 5200.00, 'Software Engineer')
		ON CONFLICT (user_id) DO UPDATE SET department_id = EXCLUDED.department_id
		RETURNING id
	`, staffID, deptID).Scan(&staffEmpID); err != nil {
		log.Fatalf("failed to seed employee profile: %v", err)
	}
	fmt.Printf("seeded employee: user=%d employee=%d username=jdoe password=employee123\n", staffID, staffEmpID)
}

func seedUser(db *sql.DB, username, role, password string) int64 {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET role = EXCLUDED.role
		RETURNING id
	`, username, username+"@example.com", role, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", username, err)
	}
	return id
}
