package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	intdb "mockcenter/internal/db"
	"mockcenter/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T, driver string) (Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return Store{DB: sqlx.NewDb(db, driver)}, mock
}

func TestBindRebindsForPostgres(t *testing.T) {
	s, _ := newMock(t, intdb.DriverPostgres)
	_, q, args, err := s.bind("user.findByToken", map[string]any{"token": "t", "now": int64(5)})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !strings.Contains(q, "u.token = $1 AND u.stamp > $2") {
		t.Fatalf("query not rebound: %s", q)
	}
	if len(args) != 2 || args[0] != "t" {
		t.Fatalf("args = %v", args)
	}
}

func TestBindUnknownStatement(t *testing.T) {
	s, _ := newMock(t, intdb.DriverMySQL)
	if _, _, _, err := s.bind("nope", nil); err == nil {
		t.Fatalf("expected error for unknown statement")
	}
}

func TestCheckLoginReportsRowsAffected(t *testing.T) {
	s, mock := newMock(t, intdb.DriverMySQL)
	mock.ExpectExec("UPDATE users SET token = \\?, stamp = \\? WHERE name = \\? AND password = \\?").
		WithArgs("tok", int64(99), "alice", "pw").
		WillReturnResult(sqlmock.NewResult(0, 0))

	res := UserRepository{Store: s}.CheckLogin(context.Background(), models.Credentials{Name: "alice", Password: "pw"}, "tok", 99)
	applied, ok := res.(intdb.Applied)
	if !ok || applied.Rows != 0 {
		t.Fatalf("expected Applied with zero rows, got %#v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindByTokenAbsent(t *testing.T) {
	s, mock := newMock(t, intdb.DriverMySQL)
	mock.ExpectQuery("WHERE u.token = \\? AND u.stamp > \\?").WillReturnError(sql.ErrNoRows)

	_, ok, err := UserRepository{Store: s}.FindByToken(context.Background(), "gone", 1)
	if err != nil || ok {
		t.Fatalf("expected absent without error, got ok=%v err=%v", ok, err)
	}
}

func TestFindByTokenFailure(t *testing.T) {
	s, mock := newMock(t, intdb.DriverMySQL)
	mock.ExpectQuery("WHERE u.token").WillReturnError(errors.New("conn reset"))

	_, _, err := UserRepository{Store: s}.FindByToken(context.Background(), "t", 1)
	if err == nil || !strings.Contains(err.Error(), "user.findByToken") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestInsertDuplicateIsClassified(t *testing.T) {
	s, mock := newMock(t, intdb.DriverMySQL)
	mock.ExpectExec("INSERT INTO users").WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	res := UserRepository{Store: s}.Insert(context.Background(), models.User{Name: "bob", Password: "pw"})
	v, ok := res.(intdb.ConstraintViolation)
	if !ok || !v.Unique {
		t.Fatalf("expected unique violation, got %#v", res)
	}
}

func TestInsertUsesReturningOnPostgres(t *testing.T) {
	s, mock := newMock(t, intdb.DriverPostgres)
	mock.ExpectQuery("INSERT INTO apps \\(name, remark, created_at\\) VALUES \\(\\$1, \\$2, \\$3\\) RETURNING id").
		WithArgs("shop", "", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	res := AppRepository{Store: s}.Insert(context.Background(), models.App{Name: "shop"})
	applied, ok := res.(intdb.Applied)
	if !ok || applied.LastID != 7 || applied.Rows != 1 {
		t.Fatalf("expected Applied{1,7}, got %#v", res)
	}
}

func TestUpdatePicksPasswordStatement(t *testing.T) {
	s, mock := newMock(t, intdb.DriverMySQL)
	repo := UserRepository{Store: s}

	mock.ExpectExec("UPDATE users SET name = \\?, role_id = \\? WHERE id = \\?").
		WithArgs("bob", int64(2), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET name = \\?, role_id = \\?, password = \\? WHERE id = \\?").
		WithArgs("bob", int64(2), "new", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo.Update(context.Background(), models.User{ID: 4, Name: "bob", RoleID: 2})
	repo.Update(context.Background(), models.User{ID: 4, Name: "bob", RoleID: 2, Password: "new"})
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMockFindAbsent(t *testing.T) {
	s, mock := newMock(t, intdb.DriverMySQL)
	mock.ExpectQuery("FROM mocks WHERE id = \\?").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, ok, err := MockRepository{Store: s}.Find(context.Background(), 3)
	if err != nil || ok {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}
}
