package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lankacivic/issue-tracker/internal/api/middleware"
)

// ctxSession extracts the session injected by the Auth middleware. An empty
// username means the middleware did not run for this route.
func ctxSession(c echo.Context) (username, sessionID string, err error) {
	username, _ = c.Get(middleware.KeyUsername).(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	sessionID, _ = c.Get(middleware.KeySessionID).(string)
	return username, sessionID, nil
}
