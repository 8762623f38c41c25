package middleware

import (
	"strings"

	"mockcenter/internal/domain"
	"mockcenter/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets through callers whose role is in allowedRoles.
// It must run after Session; anonymous callers get Unauthenticated.
//
//	r.POST("/user/add", RequireRoles("admin"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		ident := SessionFrom(c).Identity
		if ident == nil {
			AbortWithResult(c, domain.FailureKind(domain.KindUnauthenticated))
			return
		}

		role := strings.ToLower(strings.TrimSpace(ident.RoleName))
		if _, ok := allowed[role]; !ok {
			utils.Event(GetRequestID(c), "auth", "require_role").
				WithField("user_id", ident.ID).
				WithField("role", role).
				Info("role not allowed")
			AbortWithResult(c, domain.FailureKind(domain.KindForbidden))
			return
		}
		c.Next()
	}
}
