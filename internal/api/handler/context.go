package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/lumapanel/admin-api/internal/api/middleware"
)

// ctxIdentityID extracts the identity id injected by the Auth middleware.
// An empty id means the middleware did not run; reject with 401 before any
// service call.
func ctxIdentityID(c echo.Context) (string, error) {
	id, _ := c.Get(apimw.CtxIdentityID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
