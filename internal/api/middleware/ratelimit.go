package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freeedu/auth-service/internal/core/domain"
)

// AttemptLimiter abstracts the throttle store (Redis).
type AttemptLimiter interface {
	Allow(ctx context.Context, ip string) (bool, error)
}

// Throttle bounds attempts per client IP. A limiter outage fails open with
// a warning: losing brute-force protection is preferable to failing every
// login while Redis is down.
func Throttle(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !ok {
				return domain.ErrTooManyAttempts
			}
			return next(c)
		}
	}
}
