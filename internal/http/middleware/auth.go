package middleware

import (
	"context"
	"strings"

	"mockcenter/internal/domain"
	"mockcenter/internal/session"
	"mockcenter/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey  = "session"
	TokenCookie = "token"
	tokenHeader = "X-Token"
)

// Resolver turns a raw token into the caller's session.
type Resolver interface {
	Resolve(ctx context.Context, token string) (session.Session, error)
}

// TokenFrom reads the caller token from the token cookie, an
// Authorization: Bearer header or the X-Token header, in that order.
func TokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(TokenCookie); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := utils.BearerToken(c.GetHeader("Authorization")); v != "" {
		return v
	}
	return strings.TrimSpace(c.GetHeader(tokenHeader))
}

// Session resolves the caller session once per request. A resolution
// failure is logged and the request continues anonymously.
func Session(r Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFrom(c)
		sess, err := r.Resolve(c.Request.Context(), token)
		if err != nil {
			utils.Event(GetRequestID(c), "auth", "resolve").WithError(err).Error("session resolution failed")
			sess = session.Anonymous(token)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session resolved by Session, or an anonymous one.
func SessionFrom(c *gin.Context) session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(session.Session); ok {
			return s
		}
	}
	return session.Anonymous("")
}

// RequireIdentity rejects anonymous callers with an Unauthenticated envelope.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SessionFrom(c).IsAuthenticated() {
			AbortWithResult(c, domain.FailureKind(domain.KindUnauthenticated))
			return
		}
		c.Next()
	}
}
