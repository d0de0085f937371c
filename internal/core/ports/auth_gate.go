package ports

import (
	"context"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

// AuthGate registers accounts and checks credentials.
type AuthGate interface {
	Register(ctx context.Context, username, password, confirmPassword string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}
