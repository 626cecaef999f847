package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/freeedu/auth-service/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs all issued tokens. Read once at startup and treated
	// as immutable for the process lifetime; rotation is out of scope.
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	// Role is the role assigned to new registrations.
	Role string `env:"DEFAULT_ROLE, default=STUDENT"`

	BcryptCost      int `env:"BCRYPT_COST,      default=10"`
	HashConcurrency int `env:"HASH_CONCURRENCY, default=8"`
	AuditWorkers    int `env:"AUDIT_WORKERS,    default=4"`

	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=15m"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// DefaultRole returns the configured registration role.
func (c *Config) DefaultRole() domain.Role {
	return domain.Role(c.Role)
}

// Load reads configuration from environment variables using go-envconfig
// and fails fast on invalid values.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if !cfg.DefaultRole().Valid() {
		return nil, fmt.Errorf("config: DEFAULT_ROLE %q is not a valid role", cfg.Role)
	}
	return &cfg, nil
}
