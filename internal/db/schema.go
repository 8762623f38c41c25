package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// idColumn renders the auto-increment primary key for each dialect.
func idColumn(driver string) string {
	switch driver {
	case DriverSQLite:
		return "id INTEGER PRIMARY KEY AUTOINCREMENT"
	case DriverPostgres:
		return "id BIGSERIAL PRIMARY KEY"
	default:
		return "id BIGINT AUTO_INCREMENT PRIMARY KEY"
	}
}

func textType(driver string) string {
	if driver == DriverMySQL {
		return "MEDIUMTEXT"
	}
	return "TEXT"
}

// Schema returns the DDL statements for driver, in apply order.
func Schema(driver string) []string {
	id := idColumn(driver)
	text := textType(driver)
	return []string{
		`CREATE TABLE IF NOT EXISTS roles (
			` + id + `,
			name VARCHAR(64) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS apps (
			` + id + `,
			name VARCHAR(128) NOT NULL UNIQUE,
			remark VARCHAR(512) NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			` + id + `,
			name VARCHAR(64) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			role_id BIGINT NOT NULL DEFAULT 0,
			token VARCHAR(128) NULL,
			stamp BIGINT NOT NULL DEFAULT 0,
			app_id BIGINT NULL,
			created_at BIGINT NOT NULL DEFAULT 0
		)`,
		indexStatement(driver, "idx_users_token", "users (token)"),
		`CREATE TABLE IF NOT EXISTS mocks (
			` + id + `,
			pid BIGINT NOT NULL,
			name VARCHAR(128) NOT NULL DEFAULT '',
			path VARCHAR(512) NOT NULL,
			method VARCHAR(16) NOT NULL DEFAULT 'GET',
			status INT NOT NULL DEFAULT 200,
			content_type VARCHAR(128) NOT NULL DEFAULT 'application/json',
			data ` + text + ` NOT NULL,
			remark VARCHAR(512) NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT 0,
			updated_at BIGINT NOT NULL DEFAULT 0,
			UNIQUE (pid, path, method)
		)`,
	}
}

// DefaultRoles are seeded by Migrate when the roles table is empty.
var DefaultRoles = []string{"admin", "developer", "viewer"}

// Migrate applies Schema and seeds default roles. It is safe to run repeatedly.
func Migrate(ctx context.Context, x *sqlx.DB) error {
	driver := x.DriverName()
	for _, stmt := range Schema(driver) {
		if _, err := x.ExecContext(ctx, stmt); err != nil {
			if isIndexStatement(stmt) && alreadyExists(err) {
				continue
			}
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	var n int
	if err := x.GetContext(ctx, &n, `SELECT COUNT(*) FROM roles`); err != nil {
		return fmt.Errorf("count roles: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, name := range DefaultRoles {
		if _, err := x.ExecContext(ctx, x.Rebind(`INSERT INTO roles (name) VALUES (?)`), name); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	return nil
}

// MySQL has no CREATE INDEX IF NOT EXISTS; a rerun reports ER_DUP_KEYNAME instead.
func indexStatement(driver, name, on string) string {
	if driver == DriverMySQL {
		return "CREATE INDEX " + name + " ON " + on
	}
	return "CREATE INDEX IF NOT EXISTS " + name + " ON " + on
}

func isIndexStatement(stmt string) bool {
	return strings.HasPrefix(strings.TrimSpace(stmt), "CREATE INDEX")
}

func alreadyExists(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1061
}
