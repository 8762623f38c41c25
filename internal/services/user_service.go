package services

import (
	"context"
	"time"

	intdb "mockcenter/internal/db"
	"mockcenter/internal/domain"
	"mockcenter/internal/domain/models"
	"mockcenter/internal/repositories"
	"mockcenter/internal/session"
	"mockcenter/internal/utils"
)

// UserService covers user, role and app management. Sessions, when set, is
// told about user changes so a cached identity never outlives its row.
type UserService struct {
	Users    repositories.UserRepository
	Apps     repositories.AppRepository
	Sessions session.Store
	Now      func() time.Time
}

func (s UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, domain.E(domain.KindNotFoundEntry, "list users", err)
	}
	return users, nil
}

func (s UserService) Add(ctx context.Context, u models.User) (models.User, error) {
	const op = "add user"
	u.Name = utils.NormalizeSpace(u.Name)
	if u.Name == "" || u.Password == "" {
		return models.User{}, domain.Invalid(op, "name and password are required")
	}
	u.ID = 0
	u.CreatedAt = utils.Millis(s.now())
	applied, err := intdb.Translate(op, s.Users.Insert(ctx, u), intdb.InsertKinds)
	if err != nil {
		return models.User{}, err
	}
	u.ID = applied.LastID
	return u.Public(), nil
}

func (s UserService) Update(ctx context.Context, u models.User) (models.User, error) {
	const op = "update user"
	u.Name = utils.NormalizeSpace(u.Name)
	if u.ID <= 0 || u.Name == "" {
		return models.User{}, domain.Invalid(op, "id and name are required")
	}
	if _, err := intdb.Translate(op, s.Users.Update(ctx, u), intdb.UpdateKinds); err != nil {
		return models.User{}, err
	}
	// the next request re-reads the identity by token with the new role
	if err := s.evict(ctx, op, u.ID); err != nil {
		return models.User{}, err
	}
	return u.Public(), nil
}

func (s UserService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("delete user", "id is required")
	}
	if _, err := intdb.Translate("delete user", s.Users.Delete(ctx, id), intdb.DeleteKinds); err != nil {
		return err
	}
	return s.evict(ctx, "delete user", id)
}

func (s UserService) evict(ctx context.Context, op string, userID int64) error {
	if s.Sessions == nil {
		return nil
	}
	if err := s.Sessions.DeleteUser(ctx, userID); err != nil {
		return domain.E(domain.KindInternal, op, err)
	}
	return nil
}

func (s UserService) Roles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.Users.ListRoles(ctx)
	if err != nil {
		return nil, domain.E(domain.KindSelectFailed, "list roles", err)
	}
	return roles, nil
}

func (s UserService) ListApps(ctx context.Context) ([]models.App, error) {
	apps, err := s.Apps.List(ctx)
	if err != nil {
		return nil, domain.E(domain.KindSelectFailed, "list apps", err)
	}
	return apps, nil
}

func (s UserService) AddApp(ctx context.Context, a models.App) (models.App, error) {
	const op = "add app"
	a.Name = utils.NormalizeSpace(a.Name)
	if a.Name == "" {
		return models.App{}, domain.Invalid(op, "name is required")
	}
	a.ID = 0
	a.CreatedAt = utils.Millis(s.now())
	applied, err := intdb.Translate(op, s.Apps.Insert(ctx, a), intdb.InsertKinds)
	if err != nil {
		return models.App{}, err
	}
	a.ID = applied.LastID
	return a, nil
}

func (s UserService) GetApp(ctx context.Context, id int64) (models.App, error) {
	const op = "get app"
	if id <= 0 {
		return models.App{}, domain.Invalid(op, "id is required")
	}
	a, ok, err := s.Apps.Find(ctx, id)
	if err != nil {
		return models.App{}, domain.E(domain.KindSelectFailed, op, err)
	}
	if !ok {
		return models.App{}, domain.E(domain.KindNotFoundEntry, op, nil)
	}
	return a, nil
}
