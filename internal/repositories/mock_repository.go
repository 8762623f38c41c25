package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "mockcenter/internal/db"
	"mockcenter/internal/domain/models"
)

type MockRepository struct {
	Store
}

// FindPage returns the mocks of app pid at the given offset/limit.
func (r MockRepository) FindPage(ctx context.Context, pid int64, offset, limit int) ([]models.Mock, error) {
	out := []models.Mock{}
	err := r.selectAll(ctx, &out, "mock.findPage", map[string]any{"pid": pid, "offset": offset, "limit": limit})
	return out, err
}

func (r MockRepository) Count(ctx context.Context, pid int64) (int, error) {
	var n int
	err := r.get(ctx, &n, "mock.count", map[string]any{"pid": pid})
	return n, err
}

// Find returns ok=false when no mock has the id.
func (r MockRepository) Find(ctx context.Context, id int64) (models.Mock, bool, error) {
	var m models.Mock
	err := r.get(ctx, &m, "mock.find", map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Mock{}, false, nil
	}
	if err != nil {
		return models.Mock{}, false, err
	}
	return m, true, nil
}

func (r MockRepository) Insert(ctx context.Context, m models.Mock) intdb.WriteResult {
	return r.insert(ctx, "mock.insert", m)
}

func (r MockRepository) Update(ctx context.Context, m models.Mock) intdb.WriteResult {
	return r.exec(ctx, "mock.update", m)
}

func (r MockRepository) Delete(ctx context.Context, id int64) intdb.WriteResult {
	return r.exec(ctx, "mock.delete", map[string]any{"id": id})
}
