package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/freeedu/auth-service/internal/core/domain"
	"github.com/freeedu/auth-service/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.Email] = user
	return user, nil
}

func testMiddleware(t *testing.T) (echo.MiddlewareFunc, *service.TokenService) {
	t.Helper()
	tokens := service.NewTokenService("secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice@x.com": {ID: "1", Email: "alice@x.com", Role: domain.RoleAdmin},
	}}
	return Authenticate(tokens, repo), tokens
}

func runRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*Principal, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var principal *Principal
	handler := mw(func(c echo.Context) error {
		called = true
		principal = CurrentPrincipal(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return principal, called
}

func TestAuthenticate_ValidToken(t *testing.T) {
	mw, tokens := testMiddleware(t)
	token, err := tokens.Generate("alice@x.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	principal, called := runRequest(t, mw, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if principal == nil {
		t.Fatalf("expected principal to be established")
	}
	if principal.User.Email != "alice@x.com" {
		t.Fatalf("unexpected identity: %s", principal.User.Email)
	}
	if !principal.HasAuthority("ROLE_ADMIN") {
		t.Fatalf("expected ROLE_ADMIN authority, got %v", principal.Authorities)
	}
}

func TestAuthenticate_MissingHeaderProceedsUnauthenticated(t *testing.T) {
	mw, _ := testMiddleware(t)

	principal, called := runRequest(t, mw, "")
	if !called {
		t.Fatalf("next not called")
	}
	if principal != nil {
		t.Fatalf("expected no principal, got %+v", principal)
	}
}

func TestAuthenticate_WrongSchemeProceedsUnauthenticated(t *testing.T) {
	mw, _ := testMiddleware(t)

	principal, called := runRequest(t, mw, "Token abc")
	if !called {
		t.Fatalf("next not called")
	}
	if principal != nil {
		t.Fatalf("expected no principal")
	}
}

func TestAuthenticate_MalformedTokenProceedsUnauthenticated(t *testing.T) {
	mw, _ := testMiddleware(t)

	principal, called := runRequest(t, mw, "Bearer not-a-token")
	if !called {
		t.Fatalf("next not called")
	}
	if principal != nil {
		t.Fatalf("expected no principal")
	}
}

func TestAuthenticate_ExpiredTokenProceedsUnauthenticated(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	mw, _ := testMiddleware(t)
	principal, called := runRequest(t, mw, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if principal != nil {
		t.Fatalf("expected no principal for expired token")
	}
}

func TestAuthenticate_UnknownSubjectProceedsUnauthenticated(t *testing.T) {
	mw, tokens := testMiddleware(t)
	token, err := tokens.Generate("ghost@x.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	principal, called := runRequest(t, mw, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if principal != nil {
		t.Fatalf("expected no principal for unknown subject")
	}
}
