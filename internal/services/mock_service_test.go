package services

import (
	"context"
	"errors"
	"testing"

	"mockcenter/internal/domain"
	"mockcenter/internal/domain/models"
	"mockcenter/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockService(x *sqlx.DB) MockService {
	return MockService{Mocks: repositories.MockRepository{Store: repositories.Store{DB: x}}, Now: clock}
}

func intp(v int) *int { return &v }

func TestListForwardsDerivedOffsetAndLimit(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectQuery("FROM mocks WHERE pid = \\? ORDER BY id DESC LIMIT \\? OFFSET \\?").
		WithArgs(int64(7), int64(15), int64(45)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pid", "path", "method"}).AddRow(1, 7, "/a", "GET"))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM mocks WHERE pid = \\?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(46))

	page, err := domain.NewPagination(intp(3), intp(15))
	require.NoError(t, err)

	got, err := newMockService(x).List(context.Background(), 7, page)
	require.NoError(t, err)
	assert.Len(t, got.List, 1)
	assert.Equal(t, 46, got.Total)
	assert.Equal(t, 3, got.PageIndex)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRejectsMissingPid(t *testing.T) {
	x, mock := newSQLMock(t)
	_, err := newMockService(x).List(context.Background(), 0, domain.Pagination{PageSize: 10})
	assert.True(t, domain.IsKind(err, domain.KindInvalidParameter))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListSelectFailure(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectQuery("FROM mocks").WillReturnError(errors.New("boom"))
	_, err := newMockService(x).List(context.Background(), 1, domain.Pagination{PageSize: 10})
	assert.True(t, domain.IsKind(err, domain.KindSelectFailed))
}

func TestSaveInsertDuplicateEntry(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectExec("INSERT INTO mocks").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := newMockService(x).Save(context.Background(), models.Mock{PID: 1, Path: "/users"})
	require.Error(t, err)
	assert.True(t, domain.IsDuplicate(err))
	assert.False(t, domain.IsKind(err, domain.KindInsertFailed))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveInsertOtherFailure(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectExec("INSERT INTO mocks").WillReturnError(errors.New("disk full"))

	_, err := newMockService(x).Save(context.Background(), models.Mock{PID: 1, Path: "/users"})
	assert.True(t, domain.IsKind(err, domain.KindInsertFailed))
}

func TestSaveInsertAssignsID(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectExec("INSERT INTO mocks").WillReturnResult(sqlmock.NewResult(42, 1))

	got, err := newMockService(x).Save(context.Background(), models.Mock{PID: 1, Path: "/users", Method: "post"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, 200, got.Status)
	assert.Equal(t, fixedNow.UnixMilli(), got.CreatedAt)
}

func TestSaveUpdateMissingRow(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectExec("UPDATE mocks SET").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := newMockService(x).Save(context.Background(), models.Mock{ID: 3, PID: 1, Path: "/users"})
	assert.True(t, domain.IsNotFound(err))
}

func TestSaveUpdateDuplicateEntry(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectExec("UPDATE mocks SET").WillReturnError(&mysql.MySQLError{Number: 1062})

	_, err := newMockService(x).Save(context.Background(), models.Mock{ID: 3, PID: 1, Path: "/users"})
	assert.True(t, domain.IsDuplicate(err))
}

func TestSaveValidatesPath(t *testing.T) {
	x, _ := newSQLMock(t)
	_, err := newMockService(x).Save(context.Background(), models.Mock{PID: 1, Path: "users"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidParameter))
}

func TestDeleteZeroRows(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectExec("DELETE FROM mocks WHERE id = \\?").WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := newMockService(x).Delete(context.Background(), 8)
	assert.True(t, domain.IsKind(err, domain.KindDeleteFailed))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDuplicateAgainstSQLite(t *testing.T) {
	x := newSQLite(t)
	svc := newMockService(x)
	ctx := context.Background()

	first, err := svc.Save(ctx, models.Mock{PID: 1, Path: "/orders", Data: `{"ok":true}`})
	require.NoError(t, err)
	assert.Positive(t, first.ID)

	_, err = svc.Save(ctx, models.Mock{PID: 1, Path: "/orders", Data: `{}`})
	assert.True(t, domain.IsDuplicate(err))

	// same path under another method or app is allowed
	_, err = svc.Save(ctx, models.Mock{PID: 1, Path: "/orders", Method: "POST"})
	require.NoError(t, err)
	_, err = svc.Save(ctx, models.Mock{PID: 2, Path: "/orders"})
	require.NoError(t, err)

	page, err := svc.List(ctx, 1, domain.Pagination{PageIndex: 0, PageSize: 1})
	require.NoError(t, err)
	assert.Len(t, page.List, 1)
	assert.Equal(t, 2, page.Total)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got.Data)

	require.NoError(t, svc.Delete(ctx, first.ID))
	_, err = svc.Get(ctx, first.ID)
	assert.True(t, domain.IsNotFound(err))
}
