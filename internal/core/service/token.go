package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
	"github.com/lankacivic/issue-tracker/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService turns sessions into signed bearer tokens and back.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	sessions ports.SessionStore
}

// NewTokenService returns a TokenService signing with HS256. When sessions
// is non-nil, Verify also requires the session to still be live.
func NewTokenService(secret string, ttl time.Duration, sessions ports.SessionStore) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, sessions: sessions}
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue signs a token for session.
func (s *TokenService) Issue(session *domain.Session) (string, error) {
	claims := sessionClaims{
		Username: session.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.Username,
			IssuedAt:  jwt.NewNumericDate(session.StartedAt),
			ExpiresAt: jwt.NewNumericDate(session.StartedAt.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry of token and returns its session.
func (s *TokenService) Verify(ctx context.Context, token string) (*domain.Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrAuthentication
	}
	if claims.ID == "" || claims.Username == "" {
		return nil, domain.ErrAuthentication
	}

	if s.sessions != nil {
		live, err := s.sessions.Exists(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("verify session: %w: %w", domain.ErrStoreRead, err)
		}
		if !live {
			return nil, errors.Join(domain.ErrAuthentication, domain.ErrSessionNotFound)
		}
	}

	session := &domain.Session{ID: claims.ID, Username: claims.Username}
	if claims.IssuedAt != nil {
		session.StartedAt = claims.IssuedAt.Time.UTC()
	}
	return session, nil
}
