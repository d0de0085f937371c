package domain

import "time"

// User models an account allowed through the login gate.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Session is the explicit per-login context handed to callers after a
// successful Login. It replaces any ambient "current user" state.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	StartedAt time.Time `json:"started_at"`
}
