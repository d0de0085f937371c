package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lankacivic/issue-tracker/internal/api/handler"
	"github.com/lankacivic/issue-tracker/internal/core/ports"
	"github.com/lankacivic/issue-tracker/internal/core/service"
	"github.com/lankacivic/issue-tracker/internal/infrastructure/config"
	mongostore "github.com/lankacivic/issue-tracker/internal/infrastructure/db/mongo"
	redisstore "github.com/lankacivic/issue-tracker/internal/infrastructure/db/redis"
	"github.com/lankacivic/issue-tracker/internal/infrastructure/db/sqlite"
	"github.com/lankacivic/issue-tracker/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

// app holds the opened stores and the services built on them.
type app struct {
	issues ports.IssueStore
	users  ports.UserStore
	redis  *goredis.Client

	checks  map[string]handler.Check
	closers []func(context.Context) error
}

func openApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{checks: map[string]handler.Check{}}

	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)

		stores, err := mongostore.NewStores(ctx, db)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.issues, a.users = stores.Issues, stores.Users
		a.checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb store")

	default:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Store.SQLitePath})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		a.issues, a.users = sqlite.NewIssueStore(db), sqlite.NewUserStore(db)
		a.checks["sqlite"] = db.PingContext
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("using sqlite store")
	}

	if cfg.RedisEnabled() {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.redis = client
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		a.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	return a, nil
}

func (a *app) registry() *service.IssueRegistry {
	return service.NewIssueRegistry(a.issues, logger.Component("registry"))
}

func (a *app) authGate(cfg *config.Config) (*service.AuthGate, error) {
	hasher, err := service.NewPasswordHasher(cfg.Auth.PasswordHashing)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return service.NewAuthGate(a.users, a.sessions(cfg), hasher, logger.Component("auth")), nil
}

// sessions is nil without Redis; the interface must stay untyped-nil then.
func (a *app) sessions(cfg *config.Config) ports.SessionStore {
	if a.redis == nil {
		return nil
	}
	return redisstore.NewSessionStore(a.redis, cfg.Auth.SessionTTL)
}

func (a *app) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i](ctx)
	}
	a.closers = nil
}
