package api

import (
	"mockcenter/internal/config"
	h "mockcenter/internal/http/handlers"
	"mockcenter/internal/http/middleware"
	"mockcenter/internal/metrics"
	"mockcenter/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminRole may manage users and apps.
const AdminRole = "admin"

// Deps are the collaborators the router mounts.
type Deps struct {
	API         *h.API
	LoginLimit  *middleware.RateLimiter
	ExposeStats bool
}

func NewRouter(env config.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.Metrics(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Session(deps.API.Auth),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Event("", "http", "router").WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(h.NotFound)

	r.GET("/health", h.Health)
	r.GET("/db-check", h.DBCheck)
	if deps.ExposeStats {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	login := []gin.HandlerFunc{}
	if deps.LoginLimit != nil {
		login = append(login, deps.LoginLimit.Handler())
	}
	login = append(login, deps.API.Login)
	r.POST("/user/login", login...)

	admin := middleware.RequireRoles(AdminRole)
	authed := r.Group("/", middleware.RequireIdentity())
	{
		authed.GET("/routes", h.Routes)

		// Session
		authed.GET("/user/info", deps.API.Info)
		authed.POST("/user/logout", deps.API.Logout)
		authed.POST("/user/change/app", deps.API.ChangeApp)

		// Users & roles
		authed.GET("/user/list", deps.API.ListUsers)
		authed.POST("/user/add", admin, deps.API.AddUser)
		authed.POST("/user/update", admin, deps.API.UpdateUser)
		authed.POST("/user/delete/:uid", admin, deps.API.DeleteUser)
		authed.GET("/user/role/list", deps.API.ListRoles)

		// Apps
		authed.GET("/app/list", deps.API.ListApps)
		authed.POST("/app/add", admin, deps.API.AddApp)
		authed.GET("/app/:id", deps.API.GetApp)

		// Mocks
		authed.GET("/mock/list", deps.API.ListMocks)
		authed.POST("/mock/update", deps.API.SaveMock)
		authed.POST("/mock/delete/:id", deps.API.DeleteMock)
		authed.GET("/mock/:id", deps.API.GetMock)
	}

	h.SetRouter(r)
	return r
}
