package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	issueLimitPrefix = "issue_limit"
	issueLimitWindow = 24 * time.Hour
)

// IssueRateLimiter caps how many issues one user may report per window.
// Key format: issue_limit:<username>
type IssueRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewIssueRateLimiter(client *redis.Client, limit int) *IssueRateLimiter {
	return &IssueRateLimiter{client: client, limit: int64(limit), window: issueLimitWindow}
}

// Allow counts one attempt for username. When the limit is exceeded it
// returns false and the time until the window resets.
func (l *IssueRateLimiter) Allow(ctx context.Context, username string) (bool, time.Duration, error) {
	k := key(issueLimitPrefix, username)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	// First attempt in the window starts the clock.
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	if count <= l.limit {
		return true, 0, nil
	}

	retryAfter, err := l.client.TTL(ctx, k).Result()
	if err != nil || retryAfter < 0 {
		retryAfter = l.window
	}
	return false, retryAfter, nil
}
