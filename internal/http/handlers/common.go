package handlers

import (
	"strconv"
	"strings"
	"time"

	"mockcenter/internal/config"
	"mockcenter/internal/domain"
	"mockcenter/internal/http/middleware"
	"mockcenter/internal/services"
	"mockcenter/internal/utils"

	"github.com/gin-gonic/gin"
)

// API carries the services every handler needs. One value is built at
// startup and shared by all requests.
type API struct {
	Auth  services.AuthService
	Users services.UserService
	Mocks services.MockService

	SessionLifetime time.Duration
	CookieSecure    bool
}

// NewAPI wires the services against the shared DB and the given session store.
func NewAPI(env config.Env, auth services.AuthService, users services.UserService, mocks services.MockService) *API {
	return &API{
		Auth:            auth,
		Users:           users,
		Mocks:           mocks,
		SessionLifetime: env.SessionLifetime,
		CookieSecure:    env.CookieSecure,
	}
}

// BindJSONOrError ensures body is present and parsable; on failure it writes
// an InvalidParameter envelope.
func BindJSONOrError[T any](c *gin.Context, module, action string, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respond(c, module, action, nil, domain.Invalid(action, "empty body"))
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respond(c, module, action, nil, domain.E(domain.KindInvalidParameter, action, err))
		return false
	}
	return true
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("parse "+name, name+" must be a positive integer")
	}
	return id, nil
}

// queryInt returns nil when the key is absent or blank.
func queryInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.Invalid("parse "+key, key+" must be an integer")
	}
	return &v, nil
}

func pagination(c *gin.Context) (domain.Pagination, error) {
	index, err := queryInt(c, "pageIndex")
	if err != nil {
		return domain.Pagination{}, err
	}
	size, err := queryInt(c, "pageSize")
	if err != nil {
		return domain.Pagination{}, err
	}
	return domain.NewPagination(index, size)
}

// respond writes exactly one envelope for the request. Expected outcomes are
// logged at info without their cause; everything else at error with it.
func respond(c *gin.Context, module, action string, data any, err error) {
	reqID := middleware.GetRequestID(c)
	if err == nil {
		middleware.WriteResult(c, domain.Success(data))
		return
	}

	kind, _ := domain.KindOf(err)
	entry := utils.Event(reqID, module, action).WithField("code", kind.Code())
	if kind.Expected() {
		entry.Info(kind.String())
	} else {
		entry.WithError(err).Error(kind.String())
		_ = c.Error(err)
	}
	middleware.WriteResult(c, domain.FromError(err))
}
