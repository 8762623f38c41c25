// Package session holds the server-side association between a caller's token
// and its resolved identity.
package session

import (
	"context"
	"time"

	"mockcenter/internal/domain"
	"mockcenter/internal/domain/models"
	"mockcenter/internal/utils"
)

// Store is shared by all requests. Put replaces the whole identity value and
// evicts any previous token bound to the same user. DeleteUser drops whatever
// session the user currently holds.
type Store interface {
	Get(ctx context.Context, token string) (models.Identity, bool, error)
	Put(ctx context.Context, ident models.Identity) error
	Delete(ctx context.Context, token string) error
	DeleteUser(ctx context.Context, userID int64) error
}

// Session is the caller state resolved once per request and passed explicitly
// to handlers and services.
type Session struct {
	Token    string
	Identity *models.Identity
}

// Anonymous is the session of a caller without a valid token.
func Anonymous(token string) Session {
	return Session{Token: token}
}

func Authenticated(ident models.Identity) Session {
	return Session{Token: ident.Token, Identity: &ident}
}

func (s Session) IsAuthenticated() bool {
	return s.Identity != nil
}

// Require returns the identity or an Unauthenticated error for op.
func (s Session) Require(op string) (models.Identity, error) {
	if s.Identity == nil {
		return models.Identity{}, domain.E(domain.KindUnauthenticated, op, nil)
	}
	return *s.Identity, nil
}

func expired(ident models.Identity, now time.Time) bool {
	return ident.Stamp <= utils.Millis(now)
}
