package ports

import (
	"context"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

// UserStore persists accounts. Username uniqueness is not enforced here;
// the auth gate scans before inserting.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) ([]*domain.User, error)
}

// SessionStore tracks live login sessions so they can be ended before the
// token expires.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}
