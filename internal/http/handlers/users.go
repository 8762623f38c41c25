package handlers

import (
	"mockcenter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

const moduleUsers = "users"

// GET /user/list
func (a *API) ListUsers(c *gin.Context) {
	users, err := a.Users.List(c.Request.Context())
	respond(c, moduleUsers, "list", users, err)
}

// POST /user/add
func (a *API) AddUser(c *gin.Context) {
	var u models.User
	if !BindJSONOrError(c, moduleUsers, "add", &u) {
		return
	}
	created, err := a.Users.Add(c.Request.Context(), u)
	respond(c, moduleUsers, "add", created, err)
}

// POST /user/update
func (a *API) UpdateUser(c *gin.Context) {
	var u models.User
	if !BindJSONOrError(c, moduleUsers, "update", &u) {
		return
	}
	updated, err := a.Users.Update(c.Request.Context(), u)
	respond(c, moduleUsers, "update", updated, err)
}

// POST /user/delete/:uid
func (a *API) DeleteUser(c *gin.Context) {
	id, err := paramID(c, "uid")
	if err == nil {
		err = a.Users.Delete(c.Request.Context(), id)
	}
	respond(c, moduleUsers, "delete", nil, err)
}

// GET /user/role/list
func (a *API) ListRoles(c *gin.Context) {
	roles, err := a.Users.Roles(c.Request.Context())
	respond(c, moduleUsers, "roles", roles, err)
}
