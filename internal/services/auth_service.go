package services

import (
	"context"
	"strings"
	"time"

	intdb "mockcenter/internal/db"
	"mockcenter/internal/domain"
	"mockcenter/internal/domain/models"
	"mockcenter/internal/repositories"
	"mockcenter/internal/session"
	"mockcenter/internal/utils"
)

// AuthService runs login, per-request identity resolution and app switching.
type AuthService struct {
	Users    repositories.UserRepository
	Apps     repositories.AppRepository
	Sessions session.Store
	Tokens   TokenIssuer
	Now      func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks credentials in one statement that also stamps a fresh token,
// then loads and binds the identity.
func (s AuthService) Login(ctx context.Context, cred models.Credentials) (models.Identity, error) {
	const op = "login"
	cred.Name = strings.TrimSpace(cred.Name)
	if cred.Name == "" || cred.Password == "" {
		return models.Identity{}, domain.Invalid(op, "name and password are required")
	}

	token, stamp, err := s.Tokens.Issue()
	if err != nil {
		return models.Identity{}, domain.E(domain.KindInternal, op, err)
	}

	switch r := s.Users.CheckLogin(ctx, cred, token, stamp).(type) {
	case intdb.Applied:
		if r.Rows <= 0 {
			return models.Identity{}, domain.E(domain.KindInvalidCredentials, op, nil)
		}
	case intdb.ConstraintViolation:
		return models.Identity{}, domain.E(domain.KindNotFoundEntry, op, r)
	case intdb.Failure:
		return models.Identity{}, domain.E(domain.KindNotFoundEntry, op, r.Err)
	}

	ident, ok, err := s.Users.FindByCredentials(ctx, cred)
	if err != nil {
		return models.Identity{}, domain.E(domain.KindNotFoundEntry, op, err)
	}
	if !ok {
		return models.Identity{}, domain.E(domain.KindNotFoundEntry, op, nil)
	}

	if err := s.Sessions.Put(ctx, ident); err != nil {
		return models.Identity{}, domain.E(domain.KindInternal, op, err)
	}
	return ident, nil
}

// Resolve finds the session of token: first in the session store, then by a
// stateless lookup in the users table, which re-binds the session.
func (s AuthService) Resolve(ctx context.Context, token string) (session.Session, error) {
	const op = "resolve session"
	if token == "" {
		return session.Anonymous(""), nil
	}

	ident, ok, err := s.Sessions.Get(ctx, token)
	if err != nil {
		return session.Anonymous(token), domain.E(domain.KindInternal, op, err)
	}
	if ok {
		return session.Authenticated(ident), nil
	}

	ident, ok, err = s.Users.FindByToken(ctx, token, utils.Millis(s.now()))
	if err != nil {
		return session.Anonymous(token), domain.E(domain.KindSelectFailed, op, err)
	}
	if !ok {
		return session.Anonymous(token), nil
	}
	if err := s.Sessions.Put(ctx, ident); err != nil {
		return session.Anonymous(token), domain.E(domain.KindInternal, op, err)
	}
	return session.Authenticated(ident), nil
}

// SwitchApp makes appID the current app of the caller and returns the
// identity re-read by token so it reflects the switch. The app must exist.
func (s AuthService) SwitchApp(ctx context.Context, sess session.Session, appID int64) (models.Identity, error) {
	const op = "switch app"
	caller, err := sess.Require(op)
	if err != nil {
		return models.Identity{}, err
	}
	if appID <= 0 {
		return models.Identity{}, domain.Invalid(op, "app id is required")
	}

	if _, ok, err := s.Apps.Find(ctx, appID); err != nil {
		return models.Identity{}, domain.E(domain.KindSelectFailed, op, err)
	} else if !ok {
		return models.Identity{}, domain.E(domain.KindNotFoundEntry, op, nil)
	}

	if _, err := intdb.Translate(op, s.Users.SetActiveApp(ctx, appID, caller.ID), intdb.UpdateKinds); err != nil {
		return models.Identity{}, err
	}

	ident, ok, err := s.Users.FindByToken(ctx, caller.Token, utils.Millis(s.now()))
	if err != nil {
		return models.Identity{}, domain.E(domain.KindSelectFailed, op, err)
	}
	if !ok {
		// the token was replaced by a newer login in the meantime
		_ = s.Sessions.Delete(ctx, caller.Token)
		return models.Identity{}, domain.E(domain.KindUnauthenticated, op, nil)
	}
	if err := s.Sessions.Put(ctx, ident); err != nil {
		return models.Identity{}, domain.E(domain.KindInternal, op, err)
	}
	return ident, nil
}

// Current returns the caller identity or Unauthenticated.
func (s AuthService) Current(sess session.Session) (models.Identity, error) {
	return sess.Require("current user")
}

// Logout revokes the token in the users table and drops the session entry.
func (s AuthService) Logout(ctx context.Context, sess session.Session) error {
	const op = "logout"
	if sess.Identity != nil {
		if r, ok := s.Users.RevokeToken(ctx, sess.Identity.ID, sess.Token).(intdb.Failure); ok {
			return domain.E(domain.KindUpdateFailed, op, r.Err)
		}
	}
	if sess.Token == "" {
		return nil
	}
	if err := s.Sessions.Delete(ctx, sess.Token); err != nil {
		return domain.E(domain.KindInternal, op, err)
	}
	return nil
}
