package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts per client IP using a fixed window
// counter in Redis. Key format: login_attempts:<ip>
type LoginLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter allowing limit attempts per window.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, limit: int64(limit), window: window}
}

// Allow counts one attempt for ip and reports whether it is within the
// window limit. The window TTL starts at the first attempt.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	key := l.key(ip)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.limit, nil
}

func (l *LoginLimiter) key(ip string) string {
	return fmt.Sprintf("login_attempts:%s", ip)
}
