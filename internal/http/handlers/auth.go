package handlers

import (
	"net/http"

	"mockcenter/internal/domain"
	"mockcenter/internal/domain/models"
	"mockcenter/internal/http/middleware"
	"mockcenter/internal/metrics"

	"github.com/gin-gonic/gin"
)

const moduleAuth = "auth"

type changeAppRequest struct {
	AppID int64 `json:"appId" form:"appId"`
}

func (a *API) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", a.CookieSecure, true)
}

// POST /user/login
func (a *API) Login(c *gin.Context) {
	var cred models.Credentials
	if !BindJSONOrError(c, moduleAuth, "login", &cred) {
		metrics.RecordLogin(domain.KindInvalidParameter.String())
		return
	}

	ident, err := a.Auth.Login(c.Request.Context(), cred)
	if err != nil {
		kind, _ := domain.KindOf(err)
		metrics.RecordLogin(kind.String())
		respond(c, moduleAuth, "login", nil, err)
		return
	}

	metrics.RecordLogin("ok")
	a.setTokenCookie(c, ident.Token, int(a.SessionLifetime.Seconds()))
	respond(c, moduleAuth, "login", ident, nil)
}

// GET /user/info
func (a *API) Info(c *gin.Context) {
	ident, err := a.Auth.Current(middleware.SessionFrom(c))
	respond(c, moduleAuth, "info", ident, err)
}

// POST /user/logout
func (a *API) Logout(c *gin.Context) {
	err := a.Auth.Logout(c.Request.Context(), middleware.SessionFrom(c))
	if err == nil {
		a.setTokenCookie(c, "", -1)
	}
	respond(c, moduleAuth, "logout", nil, err)
}

// POST /user/change/app
// Accepts {"appId": n} or ?appId=n.
func (a *API) ChangeApp(c *gin.Context) {
	var req changeAppRequest
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, moduleAuth, "change_app", &req) {
			return
		}
	} else if err := c.ShouldBindQuery(&req); err != nil {
		respond(c, moduleAuth, "change_app", nil, domain.E(domain.KindInvalidParameter, "change app", err))
		return
	}

	ident, err := a.Auth.SwitchApp(c.Request.Context(), middleware.SessionFrom(c), req.AppID)
	respond(c, moduleAuth, "change_app", ident, err)
}
