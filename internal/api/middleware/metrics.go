package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lankacivic/issue-tracker/internal/api/metrics"
)

// RequestDuration records every request in the HTTP latency histogram,
// labelled by the matched route rather than the raw path.
func RequestDuration() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
