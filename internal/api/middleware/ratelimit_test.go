package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freeedu/auth-service/internal/core/domain"
)

type stubLimiter struct {
	allow bool
	err   error
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	return l.allow, l.err
}

func throttleRequest(t *testing.T, limiter AttemptLimiter) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Throttle(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

func TestThrottle_Allows(t *testing.T) {
	called, err := throttleRequest(t, &stubLimiter{allow: true})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestThrottle_Rejects(t *testing.T) {
	called, err := throttleRequest(t, &stubLimiter{allow: false})
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if called {
		t.Fatalf("next should not be called")
	}
}

func TestThrottle_FailsOpenOnLimiterError(t *testing.T) {
	called, err := throttleRequest(t, &stubLimiter{err: errors.New("redis down")})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("expected fail-open behaviour")
	}
}
