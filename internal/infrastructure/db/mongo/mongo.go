package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "issue-tracker"
)

// Config holds the connection settings for the MongoDB issue store.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials MongoDB, pings the primary and returns the client with the
// configured database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Stores bundles the Mongo-backed adapters sharing one database.
type Stores struct {
	Issues *IssueStore
	Users  *UserStore
}

// NewStores builds the adapters and creates their indexes.
func NewStores(ctx context.Context, db *mongo.Database) (*Stores, error) {
	s := &Stores{
		Issues: NewIssueStore(db),
		Users:  NewUserStore(db),
	}
	if err := s.Issues.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("issue indexes: %w", err)
	}
	if err := s.Users.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("user indexes: %w", err)
	}
	return s, nil
}
