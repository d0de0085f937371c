package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allow bool
	retry time.Duration
	err   error
	user  string
}

func (s *stubLimiter) Allow(_ context.Context, username string) (bool, time.Duration, error) {
	s.user = username
	return s.allow, s.retry, s.err
}

func runLimit(t *testing.T, limiter IssueLimiter, username string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/issues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if username != "" {
		c.Set(KeyUsername, username)
	}

	called := false
	err := IssueRateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestIssueRateLimit_Allows(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	rec, called := runLimit(t, limiter, "alice")

	if !called || rec.Code != http.StatusCreated {
		t.Fatalf("expected pass-through, got %d called=%v", rec.Code, called)
	}
	if limiter.user != "alice" {
		t.Fatalf("limiter keyed on %q", limiter.user)
	}
}

func TestIssueRateLimit_Rejects(t *testing.T) {
	limiter := &stubLimiter{allow: false, retry: 90*time.Second + 200*time.Millisecond}
	rec, called := runLimit(t, limiter, "alice")

	if called {
		t.Fatal("next should not run")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "91" {
		t.Fatalf("Retry-After = %q", got)
	}
}

func TestIssueRateLimit_FailsOpen(t *testing.T) {
	rec, called := runLimit(t, &stubLimiter{err: errors.New("redis down")}, "alice")
	if !called || rec.Code != http.StatusCreated {
		t.Fatalf("expected pass-through on limiter error, got %d", rec.Code)
	}
}

func TestIssueRateLimit_RequiresAuth(t *testing.T) {
	rec, called := runLimit(t, &stubLimiter{allow: true}, "")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
