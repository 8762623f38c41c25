package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables lists the tables Schema creates.
var Tables = []string{"roles", "apps", "users", "mocks"}

func hasTableQuery(driver string) string {
	switch driver {
	case DriverSQLite:
		return `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	case DriverPostgres:
		return `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`
	default:
		return `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?`
	}
}

// HasTable reports whether table exists in the current database/schema.
func HasTable(ctx context.Context, x *sqlx.DB, table string) (bool, error) {
	var n int
	if err := x.GetContext(ctx, &n, hasTableQuery(x.DriverName()), table); err != nil {
		return false, fmt.Errorf("lookup table %s: %w", table, err)
	}
	return n > 0, nil
}

// MissingTables returns the schema tables not present yet, in Tables order.
func MissingTables(ctx context.Context, x *sqlx.DB) ([]string, error) {
	missing := []string{}
	for _, t := range Tables {
		ok, err := HasTable(ctx, x, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
