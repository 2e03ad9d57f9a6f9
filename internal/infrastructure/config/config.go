package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT,          default=8080"`
	Env          string `env:"ENV,           default=development"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`
	CookieSecret string `env:"COOKIE_SECRET"`
	CookieName   string `env:"COOKIE_NAME,   default=_fishmart_session"`
	CookieSecure bool   `env:"COOKIE_SECURE, default=true"`

	// SessionTTL bounds both the session cookie and the stored credential.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	// Login attempts per client IP.
	LoginRatePerMin float64 `env:"LOGIN_RATE_PER_MIN, default=10"`
	LoginBurst      int     `env:"LOGIN_BURST,        default=5"`

	Upstream UpstreamConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_URL,     default=http://127.0.0.1:5000"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	// Empty URI disables the audit trail.
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=fishmart_gateway"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(cfg.CookieSecret) < 16 {
		return nil, fmt.Errorf("config: COOKIE_SECRET must be at least 16 characters")
	}
	return &cfg, nil
}
