package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is loaded once at process start and never mutated afterwards.
// Constructors receive the values they need; nothing reads the environment
// after Load returns.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Redis    RedisConfig

	MaxCashbackPercentage float64 `env:"MAX_CASHBACK_PERCENTAGE, default=20.0"`
}

type AuthConfig struct {
	JWTSecret       string `env:"JWT_SECRET, required"`
	JWTAlgorithm    string `env:"JWT_ALGORITHM,     default=HS256"`
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES, default=60"`
	BcryptCost      int    `env:"BCRYPT_COST,       default=12"`

	LoginMaxFailures   int           `env:"LOGIN_MAX_FAILURES,   default=10"`
	LoginFailureWindow time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

type PostgresConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://localhost:5432/cashback?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
