package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lankacivic/issue-tracker/internal/api"
	"github.com/lankacivic/issue-tracker/internal/core/service"
	redisstore "github.com/lankacivic/issue-tracker/internal/infrastructure/db/redis"
	"github.com/lankacivic/issue-tracker/pkg/logger"
)

const (
	devJWTSecret    = "development-only-secret"
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	registry := a.registry()
	if err := registry.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("starting with an empty issue list")
	}

	gate, err := a.authGate(cfg)
	if err != nil {
		return err
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
		secret = devJWTSecret
	}

	deps := api.Deps{
		Registry: registry,
		Gate:     gate,
		Tokens:   service.NewTokenService(secret, cfg.Auth.SessionTTL, a.sessions(cfg)),
		Checks:   a.checks,
		Log:      logger.Component("http"),
	}
	if a.redis != nil && cfg.Redis.IssueDailyLimit > 0 {
		deps.Limiter = redisstore.NewIssueRateLimiter(a.redis, cfg.Redis.IssueDailyLimit)
	}

	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
