package handlers

import (
	"strconv"
	"strings"

	"mockcenter/internal/domain"
	"mockcenter/internal/domain/models"
	"mockcenter/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

const moduleMocks = "mocks"

// GET /mock/list?pid=&pageIndex=&pageSize=
// pid defaults to the caller's current app.
func (a *API) ListMocks(c *gin.Context) {
	page, err := pagination(c)
	if err != nil {
		respond(c, moduleMocks, "list", nil, err)
		return
	}

	var pid int64
	if raw := strings.TrimSpace(c.Query("pid")); raw != "" {
		pid, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond(c, moduleMocks, "list", nil, domain.Invalid("list mocks", "pid must be an integer"))
			return
		}
	} else if ident := middleware.SessionFrom(c).Identity; ident != nil {
		pid = ident.CurrentApp()
	}

	out, err := a.Mocks.List(c.Request.Context(), pid, page)
	respond(c, moduleMocks, "list", out, err)
}

// GET /mock/:id
func (a *API) GetMock(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respond(c, moduleMocks, "get", nil, err)
		return
	}
	m, err := a.Mocks.Get(c.Request.Context(), id)
	respond(c, moduleMocks, "get", m, err)
}

// POST /mock/update
// Inserts when the body has no id.
func (a *API) SaveMock(c *gin.Context) {
	var m models.Mock
	if !BindJSONOrError(c, moduleMocks, "save", &m) {
		return
	}
	saved, err := a.Mocks.Save(c.Request.Context(), m)
	respond(c, moduleMocks, "save", saved, err)
}

// POST /mock/delete/:id
func (a *API) DeleteMock(c *gin.Context) {
	id, err := paramID(c, "id")
	if err == nil {
		err = a.Mocks.Delete(c.Request.Context(), id)
	}
	respond(c, moduleMocks, "delete", nil, err)
}
