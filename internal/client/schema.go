package client

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// storeMigration is one versioned DDL step applied to a freshly created
// tenant store. Every statement is idempotent (IF NOT EXISTS / ON CONFLICT)
// so a repair run can safely re-apply the whole list against a store that
// failed partway through.
type storeMigration struct {
	Version int
	Name    string
	SQL     string
}

var storeMigrations = []storeMigration{
	{
		Version: 1,
		Name:    "departments",
		SQL: `
CREATE TABLE IF NOT EXISTS departments (
	id BIGSERIAL PRIMARY KEY,
	department_name VARCHAR(100) UNIQUE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Version: 2,
		Name:    "roles",
		SQL: `
CREATE TABLE IF NOT EXISTS roles (
	id BIGSERIAL PRIMARY KEY,
	role_name VARCHAR(100) UNIQUE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Version: 3,
		Name:    "employees",
		SQL: `
CREATE TABLE IF NOT EXISTS employees (
	id BIGSERIAL PRIMARY KEY,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL,
	email TEXT UNIQUE NOT NULL,
	phone TEXT,
	address TEXT,
	profile_picture VARCHAR(255),
	status VARCHAR(20) NOT NULL DEFAULT 'active'
		CHECK (status IN ('active', 'resigned', 'terminated')),
	department_id BIGINT REFERENCES departments(id) ON DELETE CASCADE,
	role_id BIGINT REFERENCES roles(id) ON DELETE CASCADE,
	hire_date DATE,
	termination_date DATE,
	document_aadhar VARCHAR(255),
	document_pan VARCHAR(255),
	document_licence VARCHAR(255),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Version: 4,
		Name:    "admins",
		SQL: `
CREATE TABLE IF NOT EXISTS admins (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'admin'
		CHECK (role IN ('admin', 'superadmin')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Version: 5,
		Name:    "attendance",
		SQL: `
CREATE TABLE IF NOT EXISTS attendance (
	id BIGSERIAL PRIMARY KEY,
	employee_id BIGINT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
	check_in_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	check_out_time TIMESTAMPTZ,
	photo_url VARCHAR(255) NOT NULL,
	latitude DECIMAL(10,8) NOT NULL,
	longitude DECIMAL(11,8) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'present'
		CHECK (status IN ('present', 'late', 'absent')),
	ip_address VARCHAR(50),
	device_info VARCHAR(255),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Version: 6,
		Name:    "leaves",
		SQL: `
CREATE TABLE IF NOT EXISTS leaves (
	id BIGSERIAL PRIMARY KEY,
	employee_id BIGINT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
	leave_type VARCHAR(20) NOT NULL
		CHECK (leave_type IN ('casual', 'sick', 'earned')),
	from_date DATE NOT NULL,
	to_date DATE NOT NULL,
	half_day BOOLEAN NOT NULL DEFAULT FALSE,
	reason TEXT,
	rejection_reason TEXT,
	status VARCHAR(20) NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'approved', 'rejected')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Version: 7,
		Name:    "leave_balances",
		SQL: `
CREATE TABLE IF NOT EXISTS leave_balances (
	id BIGSERIAL PRIMARY KEY,
	employee_id BIGINT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
	casual_leave INT NOT NULL DEFAULT 10,
	sick_leave INT NOT NULL DEFAULT 8,
	earned_leave INT NOT NULL DEFAULT 5,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// applyStoreSchema applies all migrations to a tenant store, recording each
// applied version. Re-running against a partially migrated store is safe.
func applyStoreSchema(ctx context.Context, store *gorm.DB) error {
	if err := store.WithContext(ctx).Exec(createMigrationsTable).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range storeMigrations {
		if err := store.WithContext(ctx).Exec(m.SQL).Error; err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		err := store.WithContext(ctx).Exec(
			`INSERT INTO schema_migrations (version, name) VALUES (?, ?) ON CONFLICT (version) DO NOTHING`,
			m.Version, m.Name,
		).Error
		if err != nil {
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
	}

	return nil
}
