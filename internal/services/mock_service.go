package services

import (
	"context"
	"strings"
	"time"

	intdb "mockcenter/internal/db"
	"mockcenter/internal/domain"
	"mockcenter/internal/domain/models"
	"mockcenter/internal/repositories"
	"mockcenter/internal/utils"
)

// MockService manages mock-API definitions of an app.
type MockService struct {
	Mocks repositories.MockRepository
	Now   func() time.Time
}

func (s MockService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns one page of the mocks owned by app pid.
func (s MockService) List(ctx context.Context, pid int64, page domain.Pagination) (domain.Page[models.Mock], error) {
	const op = "list mocks"
	if pid <= 0 {
		return domain.Page[models.Mock]{}, domain.Invalid(op, "pid is required")
	}
	items, err := s.Mocks.FindPage(ctx, pid, page.Offset(), page.Limit())
	if err != nil {
		return domain.Page[models.Mock]{}, domain.E(domain.KindSelectFailed, op, err)
	}
	total, err := s.Mocks.Count(ctx, pid)
	if err != nil {
		return domain.Page[models.Mock]{}, domain.E(domain.KindSelectFailed, op, err)
	}
	return domain.NewPage(items, total, page), nil
}

func (s MockService) Get(ctx context.Context, id int64) (models.Mock, error) {
	const op = "get mock"
	m, ok, err := s.Mocks.Find(ctx, id)
	if err != nil {
		return models.Mock{}, domain.E(domain.KindSelectFailed, op, err)
	}
	if !ok {
		return models.Mock{}, domain.E(domain.KindNotFoundEntry, op, nil)
	}
	return m, nil
}

// Save updates m when it has an id and inserts it otherwise.
func (s MockService) Save(ctx context.Context, m models.Mock) (models.Mock, error) {
	m.Normalize()
	if m.PID <= 0 {
		return models.Mock{}, domain.Invalid("save mock", "pid is required")
	}
	if m.Path == "" || !strings.HasPrefix(m.Path, "/") {
		return models.Mock{}, domain.Invalid("save mock", "path must start with /")
	}

	now := utils.Millis(s.now())
	m.UpdatedAt = now
	if m.ID > 0 {
		if _, err := intdb.Translate("update mock", s.Mocks.Update(ctx, m), intdb.UpdateKinds); err != nil {
			return models.Mock{}, err
		}
		return m, nil
	}

	m.CreatedAt = now
	applied, err := intdb.Translate("insert mock", s.Mocks.Insert(ctx, m), intdb.InsertKinds)
	if err != nil {
		return models.Mock{}, err
	}
	m.ID = applied.LastID
	return m, nil
}

func (s MockService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("delete mock", "id is required")
	}
	_, err := intdb.Translate("delete mock", s.Mocks.Delete(ctx, id), intdb.DeleteKinds)
	return err
}
