package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

// Context keys set by Auth.
const (
	KeyUsername  = "username"
	KeySessionID = "session_id"
)

// TokenVerifier resolves a bearer token to its session.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Session, error)
}

// Auth validates the bearer token and injects the session's username and id
// into the context.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			session, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
				}
				if errors.Is(err, domain.ErrAuthentication) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set(KeyUsername, session.Username)
			c.Set(KeySessionID, session.ID)

			return next(c)
		}
	}
}
