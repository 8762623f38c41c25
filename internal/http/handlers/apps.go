package handlers

import (
	"mockcenter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

const moduleApps = "apps"

// GET /app/list
func (a *API) ListApps(c *gin.Context) {
	apps, err := a.Users.ListApps(c.Request.Context())
	respond(c, moduleApps, "list", apps, err)
}

// POST /app/add
func (a *API) AddApp(c *gin.Context) {
	var app models.App
	if !BindJSONOrError(c, moduleApps, "add", &app) {
		return
	}
	created, err := a.Users.AddApp(c.Request.Context(), app)
	respond(c, moduleApps, "add", created, err)
}

// GET /app/:id
func (a *API) GetApp(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respond(c, moduleApps, "get", nil, err)
		return
	}
	app, err := a.Users.GetApp(c.Request.Context(), id)
	respond(c, moduleApps, "get", app, err)
}
