package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lankacivic/issue-tracker/internal/api/metrics"
)

// IssueLimiter decides whether a user may report another issue.
type IssueLimiter interface {
	Allow(ctx context.Context, username string) (bool, time.Duration, error)
}

type rateLimitResponse struct {
	Error      string  `json:"error"`
	RetryAfter float64 `json:"retry_after"`
}

// IssueRateLimit rejects issue creation with 429 once the caller has used up
// their allowance. It must run after Auth. When the limiter itself fails the
// request is let through.
func IssueRateLimit(limiter IssueLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get(KeyUsername).(string)
			if username == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			ok, retryAfter, err := limiter.Allow(c.Request().Context(), username)
			if err != nil {
				log.Warn().Err(err).Str("username", username).Msg("rate limiter unavailable")
				return next(c)
			}
			if !ok {
				metrics.IssuesRateLimitedTotal.Inc()
				secs := math.Ceil(retryAfter.Seconds())
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(secs)))
				return c.JSON(http.StatusTooManyRequests, rateLimitResponse{
					Error:      "rate limit exceeded",
					RetryAfter: secs,
				})
			}
			return next(c)
		}
	}
}
