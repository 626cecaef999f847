package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/freeedu/auth-service/internal/core/domain"
)

func gateContext(principal *Principal) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(PrincipalKey, principal)
	}
	return c
}

func TestRequireAuth_AllowsAuthenticated(t *testing.T) {
	c := gateContext(&Principal{
		User:        &domain.User{Email: "a@x.com", Role: domain.RoleStudent},
		Authorities: []string{domain.RoleStudent.Authority()},
	})

	called := false
	handler := RequireAuth()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireAuth_RejectsUnauthenticated(t *testing.T) {
	c := gateContext(nil)

	handler := RequireAuth()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRequireAuthority_Allows(t *testing.T) {
	c := gateContext(&Principal{
		User:        &domain.User{Email: "a@x.com", Role: domain.RoleAdmin},
		Authorities: []string{domain.RoleAdmin.Authority()},
	})

	called := false
	handler := RequireAuthority("ROLE_ADMIN")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireAuthority_Forbids(t *testing.T) {
	c := gateContext(&Principal{
		User:        &domain.User{Email: "a@x.com", Role: domain.RoleStudent},
		Authorities: []string{domain.RoleStudent.Authority()},
	})

	handler := RequireAuthority("ROLE_ADMIN")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestRequireAuthority_RejectsUnauthenticated(t *testing.T) {
	c := gateContext(nil)

	handler := RequireAuthority("ROLE_ADMIN")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
