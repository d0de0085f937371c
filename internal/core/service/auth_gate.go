package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
	"github.com/lankacivic/issue-tracker/internal/core/ports"
)

// AuthGate implements registration, login and logout.
type AuthGate struct {
	users    ports.UserStore
	sessions ports.SessionStore
	hasher   PasswordHasher
	log      zerolog.Logger
}

// NewAuthGate builds an AuthGate. sessions may be nil, in which case
// sessions are not tracked and Logout is a no-op. A nil hasher stores
// passwords as given.
func NewAuthGate(users ports.UserStore, sessions ports.SessionStore, hasher PasswordHasher, log zerolog.Logger) *AuthGate {
	if hasher == nil {
		hasher = PlainHasher{}
	}
	return &AuthGate{users: users, sessions: sessions, hasher: hasher, log: log}
}

// Register creates an account after checking that both passwords agree and
// that the username is free.
func (g *AuthGate) Register(ctx context.Context, username, password, confirmPassword string) (*domain.User, error) {
	if username == "" || password == "" || password != confirmPassword {
		return nil, domain.ErrValidation
	}

	existing, err := g.users.FindByUsername(ctx, username)
	if err != nil {
		g.log.Error().Err(err).Str("username", username).Msg("user lookup failed")
		return nil, fmt.Errorf("register: %w: %w", domain.ErrStoreRead, err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrDuplicateUser
	}

	stored, err := g.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:  username,
		Password:  stored,
		CreatedAt: time.Now().UTC(),
	}
	if err := g.users.Create(ctx, user); err != nil {
		g.log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, fmt.Errorf("register: %w: %w", domain.ErrStoreWrite, err)
	}

	g.log.Info().Str("username", username).Msg("user registered")
	return user, nil
}

// Login checks the credentials and opens a session.
func (g *AuthGate) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrValidation
	}

	users, err := g.users.FindByUsername(ctx, username)
	if err != nil {
		g.log.Error().Err(err).Str("username", username).Msg("user lookup failed")
		return nil, fmt.Errorf("login: %w: %w", domain.ErrStoreRead, err)
	}

	matched := false
	for _, u := range users {
		if g.hasher.Matches(u.Password, password) {
			matched = true
			break
		}
	}
	if !matched {
		g.log.Debug().Str("username", username).Msg("login rejected")
		return nil, domain.ErrAuthentication
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		Username:  username,
		StartedAt: time.Now().UTC(),
	}
	if g.sessions != nil {
		if err := g.sessions.Create(ctx, session); err != nil {
			g.log.Error().Err(err).Str("username", username).Msg("failed to store session")
			return nil, fmt.Errorf("login: %w: %w", domain.ErrStoreWrite, err)
		}
	}

	g.log.Info().Str("username", username).Str("session_id", session.ID).Msg("user logged in")
	return session, nil
}

// Logout ends a session.
func (g *AuthGate) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrValidation
	}
	if g.sessions == nil {
		return nil
	}
	if err := g.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w: %w", domain.ErrStoreWrite, err)
	}
	g.log.Info().Str("session_id", sessionID).Msg("user logged out")
	return nil
}
