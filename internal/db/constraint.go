package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// WriteResult is the outcome of a mutating statement. It is one of Applied,
// ConstraintViolation or Failure.
type WriteResult interface {
	writeResult()
}

// Applied reports a statement that ran; Rows may be zero.
type Applied struct {
	Rows   int64
	LastID int64
}

// ConstraintViolation is a structured integrity signal from the store.
type ConstraintViolation struct {
	Driver string
	Code   string
	Unique bool
	Err    error
}

// Failure is any other error raised by the statement.
type Failure struct {
	Err error
}

func (Applied) writeResult()             {}
func (ConstraintViolation) writeResult() {}
func (Failure) writeResult()             {}

func (v ConstraintViolation) Error() string {
	kind := "constraint"
	if v.Unique {
		kind = "unique constraint"
	}
	return fmt.Sprintf("%s %s violation (code %s)", v.Driver, kind, v.Code)
}

func (v ConstraintViolation) Unwrap() error { return v.Err }

// Classify turns the (result, error) pair of an Exec into a WriteResult.
func Classify(res sql.Result, err error) WriteResult {
	if err != nil {
		return ClassifyError(err)
	}
	out := Applied{}
	if res == nil {
		return out
	}
	if n, rerr := res.RowsAffected(); rerr == nil {
		out.Rows = n
	}
	if id, ierr := res.LastInsertId(); ierr == nil {
		out.LastID = id
	}
	return out
}

// ClassifyError inspects err for a driver constraint code.
func ClassifyError(err error) WriteResult {
	if v, ok := ViolationOf(err); ok {
		return v
	}
	return Failure{Err: err}
}

// ViolationOf extracts a constraint violation from a driver error. Only
// structured error codes are consulted, never the message text.
func ViolationOf(err error) (ConstraintViolation, bool) {
	if err == nil {
		return ConstraintViolation{}, false
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062, 1586:
			return ConstraintViolation{Driver: DriverMySQL, Code: fmt.Sprint(me.Number), Unique: true, Err: err}, true
		case 1048, 1216, 1217, 1451, 1452, 3819:
			return ConstraintViolation{Driver: DriverMySQL, Code: fmt.Sprint(me.Number), Err: err}, true
		}
		return ConstraintViolation{}, false
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code&0xff != sqlite3.SQLITE_CONSTRAINT {
			return ConstraintViolation{}, false
		}
		unique := code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
		return ConstraintViolation{Driver: DriverSQLite, Code: fmt.Sprint(code), Unique: unique, Err: err}, true
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		if !strings.HasPrefix(pe.Code, "23") {
			return ConstraintViolation{}, false
		}
		return ConstraintViolation{Driver: DriverPostgres, Code: pe.Code, Unique: pe.Code == "23505", Err: err}, true
	}

	return ConstraintViolation{}, false
}
