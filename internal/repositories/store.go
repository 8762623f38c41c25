package repositories

import (
	"context"
	"fmt"

	intconfig "mockcenter/internal/config"
	intdb "mockcenter/internal/db"

	"github.com/jmoiron/sqlx"
)

// Store executes named statements against the shared DB (or DB when set).
type Store struct {
	DB *sqlx.DB
}

func (s Store) db() *sqlx.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// bind resolves a statement by name, expands :named params and rebinds
// placeholders for the active driver.
func (s Store) bind(name string, arg any) (*sqlx.DB, string, []any, error) {
	x := s.db()
	if x == nil {
		return nil, "", nil, fmt.Errorf("database not connected")
	}
	stmt, ok := Statements[name]
	if !ok {
		return nil, "", nil, fmt.Errorf("unknown statement %q", name)
	}
	if arg == nil {
		return x, x.Rebind(stmt), nil, nil
	}
	q, args, err := sqlx.Named(stmt, arg)
	if err != nil {
		return nil, "", nil, fmt.Errorf("bind %s: %w", name, err)
	}
	return x, x.Rebind(q), args, nil
}

func (s Store) get(ctx context.Context, dest any, name string, arg any) error {
	x, q, args, err := s.bind(name, arg)
	if err != nil {
		return err
	}
	if err := x.GetContext(ctx, dest, q, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (s Store) selectAll(ctx context.Context, dest any, name string, arg any) error {
	x, q, args, err := s.bind(name, arg)
	if err != nil {
		return err
	}
	if err := x.SelectContext(ctx, dest, q, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (s Store) exec(ctx context.Context, name string, arg any) intdb.WriteResult {
	x, q, args, err := s.bind(name, arg)
	if err != nil {
		return intdb.Failure{Err: err}
	}
	return intdb.Classify(x.ExecContext(ctx, q, args...))
}

// insert runs an INSERT statement and reports the new id. Postgres has no
// LastInsertId, so the id is read back with RETURNING.
func (s Store) insert(ctx context.Context, name string, arg any) intdb.WriteResult {
	x, q, args, err := s.bind(name, arg)
	if err != nil {
		return intdb.Failure{Err: err}
	}
	if intdb.SupportsLastInsertID(x.DriverName()) {
		return intdb.Classify(x.ExecContext(ctx, q, args...))
	}
	var id int64
	if err := x.QueryRowxContext(ctx, q+" RETURNING id", args...).Scan(&id); err != nil {
		return intdb.ClassifyError(err)
	}
	return intdb.Applied{Rows: 1, LastID: id}
}
