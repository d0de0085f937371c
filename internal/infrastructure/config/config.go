package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET"`
	SessionTTL      time.Duration `env:"SESSION_TTL,      default=24h"`
	PasswordHashing string        `env:"PASSWORD_HASHING, default=plain"`
}

type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER, default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,  default=data/issues.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=issue_tracker"`
}

// RedisConfig is optional: with an empty address sessions are not tracked
// server-side and issue creation is not rate limited.
type RedisConfig struct {
	Addr            string `env:"REDIS_ADDR"`
	Password        string `env:"REDIS_PASSWORD"`
	DB              int    `env:"REDIS_DB,          default=0"`
	IssueDailyLimit int    `env:"ISSUE_DAILY_LIMIT, default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Auth.JWTSecret == "" && !c.IsDevelopment() {
		return fmt.Errorf("config: JWT_SECRET is required outside development")
	}
	if c.Redis.IssueDailyLimit < 0 {
		return fmt.Errorf("config: ISSUE_DAILY_LIMIT must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}
