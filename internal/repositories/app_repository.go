package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "mockcenter/internal/db"
	"mockcenter/internal/domain/models"
)

type AppRepository struct {
	Store
}

func (r AppRepository) List(ctx context.Context) ([]models.App, error) {
	out := []models.App{}
	err := r.selectAll(ctx, &out, "app.list", nil)
	return out, err
}

func (r AppRepository) Find(ctx context.Context, id int64) (models.App, bool, error) {
	var a models.App
	err := r.get(ctx, &a, "app.find", map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return models.App{}, false, nil
	}
	if err != nil {
		return models.App{}, false, err
	}
	return a, true, nil
}

func (r AppRepository) Insert(ctx context.Context, a models.App) intdb.WriteResult {
	return r.insert(ctx, "app.insert", a)
}
