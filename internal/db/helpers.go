package db

import (
	"fmt"
	"strings"
)

// Driver names as registered with database/sql.
const (
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// NormalizeDriver maps user-facing aliases onto a registered driver name.
func NormalizeDriver(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mysql", "mariadb":
		return DriverMySQL, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "pgx", "postgres", "postgresql":
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", name)
}

// SupportsLastInsertID reports whether sql.Result.LastInsertId works for the driver.
func SupportsLastInsertID(driver string) bool {
	return driver != DriverPostgres
}
