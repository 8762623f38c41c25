package services

import (
	"context"
	"testing"
	"time"

	intdb "mockcenter/internal/db"
	"mockcenter/internal/repositories"
	"mockcenter/internal/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// newSQLite opens a migrated in-memory database.
func newSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	x, err := sqlx.Open(intdb.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	x.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = x.Close() })
	if err := intdb.Migrate(context.Background(), x); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return x
}

func seedUser(t *testing.T, x *sqlx.DB, name, password string, roleID int64) int64 {
	t.Helper()
	res, err := x.Exec(`INSERT INTO users (name, password, role_id, created_at) VALUES (?, ?, ?, 0)`, name, password, roleID)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedApp(t *testing.T, x *sqlx.DB, name string) int64 {
	t.Helper()
	res, err := x.Exec(`INSERT INTO apps (name, remark, created_at) VALUES (?, '', 0)`, name)
	if err != nil {
		t.Fatalf("seed app: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func newSQLMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func newAuthService(x *sqlx.DB, store session.Store) AuthService {
	tokens := NewTokenIssuer(7000 * 24 * time.Hour)
	tokens.Now = clock
	return AuthService{
		Users:    repositories.UserRepository{Store: repositories.Store{DB: x}},
		Apps:     repositories.AppRepository{Store: repositories.Store{DB: x}},
		Sessions: store,
		Tokens:   tokens,
		Now:      clock,
	}
}
