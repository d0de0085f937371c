package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lankacivic/issue-tracker/docs"
	"github.com/lankacivic/issue-tracker/internal/api/handler"
	"github.com/lankacivic/issue-tracker/internal/api/middleware"
	"github.com/lankacivic/issue-tracker/internal/core/ports"
)

// Tokens issues and verifies bearer tokens.
type Tokens interface {
	handler.TokenIssuer
	middleware.TokenVerifier
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Registry ports.IssueRegistry
	Gate     ports.AuthGate
	Tokens   Tokens
	// Limiter caps issue creation per user; nil disables the limit.
	Limiter middleware.IssueLimiter
	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.RequestDuration())

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Gate, d.Tokens)
	requireAuth := middleware.Auth(d.Tokens)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- Issue routes ---
	issueHandler := handler.NewIssueHandler(d.Registry, d.Log)

	v1 := e.Group("/v1")
	v1.GET("/regions", handler.Regions)

	issues := v1.Group("/issues", requireAuth)
	createMW := []echo.MiddlewareFunc{}
	if d.Limiter != nil {
		createMW = append(createMW, middleware.IssueRateLimit(d.Limiter, d.Log))
	}
	issues.GET("", issueHandler.List)
	issues.POST("", issueHandler.Create, createMW...)
	issues.GET("/:id", issueHandler.Get)
	issues.PUT("/:id", issueHandler.Update)
	issues.DELETE("/:id", issueHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
