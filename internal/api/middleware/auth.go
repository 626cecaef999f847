package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/freeedu/auth-service/internal/api/metrics"
	"github.com/freeedu/auth-service/internal/core/domain"
	"github.com/freeedu/auth-service/internal/core/ports"
)

// PrincipalKey is the echo context key under which the authenticated
// principal is stored.
const PrincipalKey = "principal"

// Principal is the request-scoped authenticated identity and its
// authorities.
type Principal struct {
	User        *domain.User
	Authorities []string
}

// HasAuthority reports whether the principal carries the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Authenticate resolves the bearer token on each request and, when it
// verifies, establishes the principal in the request context. It is
// deliberately fail-open: a missing header, wrong scheme, malformed or
// expired token, or unknown subject all let the request continue
// unauthenticated. Denying unauthenticated access to protected routes is
// the job of RequireAuth, not of this middleware.
func Authenticate(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenResolutionsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenResolutionsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}
			token := parts[1]

			subject, err := tokens.ExtractSubject(token)
			if err != nil {
				metrics.TokenResolutionsTotal.WithLabelValues("invalid_token").Inc()
				return next(c)
			}

			user, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				metrics.TokenResolutionsTotal.WithLabelValues("unknown_subject").Inc()
				return next(c)
			}

			if !tokens.IsValid(token, user.Email) {
				metrics.TokenResolutionsTotal.WithLabelValues("invalid_token").Inc()
				return next(c)
			}

			c.Set(PrincipalKey, &Principal{
				User:        user,
				Authorities: []string{user.Role.Authority()},
			})
			metrics.TokenResolutionsTotal.WithLabelValues("authenticated").Inc()

			return next(c)
		}
	}
}
