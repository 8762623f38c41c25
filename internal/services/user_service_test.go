package services

import (
	"context"
	"errors"
	"testing"

	"mockcenter/internal/domain"
	"mockcenter/internal/domain/models"
	"mockcenter/internal/repositories"
	"mockcenter/internal/session"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(x *sqlx.DB) UserService {
	store := repositories.Store{DB: x}
	return UserService{
		Users: repositories.UserRepository{Store: store},
		Apps:  repositories.AppRepository{Store: store},
		Now:   clock,
	}
}

func TestUserLifecycle(t *testing.T) {
	svc := newUserService(newSQLite(t))
	ctx := context.Background()

	added, err := svc.Add(ctx, models.User{Name: "  carol ", Password: "pw", RoleID: 2})
	require.NoError(t, err)
	assert.Positive(t, added.ID)
	assert.Empty(t, added.Password, "password must not be echoed")

	_, err = svc.Add(ctx, models.User{Name: "carol", Password: "other"})
	assert.True(t, domain.IsDuplicate(err))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "developer", users[0].RoleName)
	assert.Empty(t, users[0].Password)

	updated, err := svc.Update(ctx, models.User{ID: added.ID, Name: "carol2", RoleID: 3})
	require.NoError(t, err)
	assert.Equal(t, "carol2", updated.Name)

	_, err = svc.Update(ctx, models.User{ID: 999, Name: "ghost"})
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, svc.Delete(ctx, added.ID))
	err = svc.Delete(ctx, added.ID)
	assert.True(t, domain.IsKind(err, domain.KindDeleteFailed))
}

func TestUpdateKeepsPasswordWhenBlank(t *testing.T) {
	x := newSQLite(t)
	svc := newUserService(x)
	ctx := context.Background()

	added, err := svc.Add(ctx, models.User{Name: "dave", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, models.User{ID: added.ID, Name: "dave"})
	require.NoError(t, err)

	var pw string
	require.NoError(t, x.Get(&pw, `SELECT password FROM users WHERE id = ?`, added.ID))
	assert.Equal(t, "pw", pw)
}

func TestRolesAndApps(t *testing.T) {
	svc := newUserService(newSQLite(t))
	ctx := context.Background()

	roles, err := svc.Roles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)

	app, err := svc.AddApp(ctx, models.App{Name: " shop "})
	require.NoError(t, err)
	assert.Equal(t, "shop", app.Name)

	_, err = svc.AddApp(ctx, models.App{Name: "shop"})
	assert.True(t, domain.IsDuplicate(err))

	apps, err := svc.ListApps(ctx)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	got, err := svc.GetApp(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "shop", got.Name)

	_, err = svc.GetApp(ctx, app.ID+1)
	assert.True(t, domain.IsNotFound(err))
}

func TestUserListFailureMapsToNotFound(t *testing.T) {
	x, mock := newSQLMock(t)
	mock.ExpectQuery("FROM users").WillReturnError(errors.New("boom"))
	_, err := newUserService(x).List(context.Background())
	assert.True(t, domain.IsNotFound(err))

	mock.ExpectQuery("FROM roles").WillReturnError(errors.New("boom"))
	_, err = newUserService(x).Roles(context.Background())
	assert.True(t, domain.IsKind(err, domain.KindSelectFailed))
}

func TestUserChangesReachLiveSessions(t *testing.T) {
	x := newSQLite(t)
	uid := seedUser(t, x, "bob", "pw", 1)
	store := session.NewMemoryStore()
	auth := newAuthService(x, store)
	users := newUserService(x)
	users.Sessions = store
	ctx := context.Background()

	ident, err := auth.Login(ctx, models.Credentials{Name: "bob", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "admin", ident.RoleName)

	// demotion: the cached admin identity is dropped and re-read with the new role
	_, err = users.Update(ctx, models.User{ID: uid, Name: "bob", RoleID: 3})
	require.NoError(t, err)
	_, ok, err := store.Get(ctx, ident.Token)
	require.NoError(t, err)
	assert.False(t, ok)

	sess, err := auth.Resolve(ctx, ident.Token)
	require.NoError(t, err)
	require.True(t, sess.IsAuthenticated())
	assert.Equal(t, "viewer", sess.Identity.RoleName)

	// deletion: the token no longer authenticates
	require.NoError(t, users.Delete(ctx, uid))
	sess, err = auth.Resolve(ctx, ident.Token)
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())
	assert.Equal(t, 0, store.Len())
}

func TestFailedUserWritesKeepSessions(t *testing.T) {
	x := newSQLite(t)
	seedUser(t, x, "bob", "pw", 1)
	store := session.NewMemoryStore()
	auth := newAuthService(x, store)
	users := newUserService(x)
	users.Sessions = store
	ctx := context.Background()

	ident, err := auth.Login(ctx, models.Credentials{Name: "bob", Password: "pw"})
	require.NoError(t, err)

	err = users.Delete(ctx, 999)
	assert.True(t, domain.IsKind(err, domain.KindDeleteFailed))
	_, ok, err := store.Get(ctx, ident.Token)
	require.NoError(t, err)
	assert.True(t, ok)
}
