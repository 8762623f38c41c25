package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "mockcenter/internal/db"
	"mockcenter/internal/domain/models"
)

type UserRepository struct {
	Store
}

// CheckLogin writes token and stamp onto the user matching the credentials
// and returns the number of matched rows.
func (r UserRepository) CheckLogin(ctx context.Context, cred models.Credentials, token string, stamp int64) intdb.WriteResult {
	return r.exec(ctx, "user.login", map[string]any{
		"name":     cred.Name,
		"password": cred.Password,
		"token":    token,
		"stamp":    stamp,
	})
}

func (r UserRepository) FindByCredentials(ctx context.Context, cred models.Credentials) (models.Identity, bool, error) {
	return r.findIdentity(ctx, "user.findByLogin", map[string]any{"name": cred.Name, "password": cred.Password})
}

// FindByToken resolves a token whose stamp is still after now (epoch millis).
func (r UserRepository) FindByToken(ctx context.Context, token string, now int64) (models.Identity, bool, error) {
	if token == "" {
		return models.Identity{}, false, nil
	}
	return r.findIdentity(ctx, "user.findByToken", map[string]any{"token": token, "now": now})
}

func (r UserRepository) findIdentity(ctx context.Context, name string, arg map[string]any) (models.Identity, bool, error) {
	var ident models.Identity
	err := r.get(ctx, &ident, name, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Identity{}, false, nil
	}
	if err != nil {
		return models.Identity{}, false, err
	}
	return ident, true, nil
}

// SetActiveApp records appID as the current app of userID.
func (r UserRepository) SetActiveApp(ctx context.Context, appID, userID int64) intdb.WriteResult {
	return r.exec(ctx, "user.changeApp", map[string]any{"app_id": appID, "id": userID})
}

// RevokeToken clears token for userID unless a newer login replaced it.
func (r UserRepository) RevokeToken(ctx context.Context, userID int64, token string) intdb.WriteResult {
	return r.exec(ctx, "user.logout", map[string]any{"id": userID, "token": token})
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	err := r.selectAll(ctx, &out, "user.list", nil)
	return out, err
}

func (r UserRepository) Insert(ctx context.Context, u models.User) intdb.WriteResult {
	return r.insert(ctx, "user.insert", u)
}

// Update keeps the stored password when u.Password is empty.
func (r UserRepository) Update(ctx context.Context, u models.User) intdb.WriteResult {
	if u.Password == "" {
		return r.exec(ctx, "user.update", u)
	}
	return r.exec(ctx, "user.updateWithPassword", u)
}

func (r UserRepository) Delete(ctx context.Context, id int64) intdb.WriteResult {
	return r.exec(ctx, "user.delete", map[string]any{"id": id})
}

func (r UserRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	out := []models.Role{}
	err := r.selectAll(ctx, &out, "role.list", nil)
	return out, err
}
