package handlers

import (
	"sync"

	"mockcenter/internal/config"
	intdb "mockcenter/internal/db"
	"mockcenter/internal/domain"
	"mockcenter/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	respond(c, "system", "health", gin.H{"status": "ok"}, nil)
}

// DBCheck pings the shared connection and reports tables not migrated yet.
// The driver name and user count are only shown to authenticated callers.
func DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := config.EnsureDB(ctx); err != nil {
		respond(c, "system", "db_check", nil, domain.E(domain.KindSelectFailed, "db check", err))
		return
	}
	missing, err := intdb.MissingTables(ctx, config.DB)
	if err != nil {
		respond(c, "system", "db_check", nil, domain.E(domain.KindSelectFailed, "db check", err))
		return
	}

	out := gin.H{"missingTables": missing}
	if !middleware.SessionFrom(c).IsAuthenticated() {
		respond(c, "system", "db_check", out, nil)
		return
	}
	out["driver"] = config.DB.DriverName()
	if len(missing) == 0 {
		var count int
		if err := config.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
			respond(c, "system", "db_check", nil, domain.E(domain.KindSelectFailed, "db check", err))
			return
		}
		out["users"] = count
	}
	respond(c, "system", "db_check", out, nil)
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respond(c, "system", "routes", nil, domain.E(domain.KindInternal, "routes", nil))
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	respond(c, "system", "routes", out, nil)
}

// NotFound answers unmatched routes with a NotFoundEntry envelope.
func NotFound(c *gin.Context) {
	respond(c, "system", "no_route", nil, domain.E(domain.KindNotFoundEntry, c.Request.Method+" "+c.Request.URL.Path, nil))
}
