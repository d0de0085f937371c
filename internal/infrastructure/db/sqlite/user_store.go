package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

// UserStore persists accounts. Each call is its own statement; accounts do
// not take part in the issue store's pending transaction.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new account row.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var createdAt any
	if !u.CreatedAt.IsZero() {
		createdAt = u.CreatedAt.UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password, email, created_at) VALUES (?, ?, ?, ?)`,
		u.Username, u.Password, u.Email, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByUsername returns every account row with the given username.
func (s *UserStore) FindByUsername(ctx context.Context, username string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT username, password, email, created_at FROM users WHERE username = ? ORDER BY id`, username)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		var (
			u         domain.User
			email     sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&u.Username, &u.Password, &email, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Email = email.String
		if createdAt.Valid {
			u.CreatedAt = createdAt.Time
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return out, nil
}
