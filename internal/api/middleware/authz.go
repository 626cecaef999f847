package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CurrentPrincipal returns the principal established by Authenticate, or
// nil when the request is unauthenticated.
func CurrentPrincipal(c echo.Context) *Principal {
	p, _ := c.Get(PrincipalKey).(*Principal)
	return p
}

// RequireAuth rejects requests that carry no established principal.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentPrincipal(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// RequireAuthority enforces that the principal holds one of the given
// authorities. Unauthenticated requests get 401, authenticated ones
// without a matching authority get 403.
func RequireAuthority(authorities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := CurrentPrincipal(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, a := range authorities {
				if p.HasAuthority(a) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient authority")
		}
	}
}
