package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:5173"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Upstream struct {
		// Base URL of the remote ledger backend; everything of substance
		// (balances, KYC state, token issuance) lives there.
		BaseURL string        `env:"UPSTREAM_BASE_URL,required"`
		Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`

		// The upstream host sleeps when idle and takes tens of seconds to
		// wake; the keepalive pinger works around that.
		KeepaliveEnabled  bool          `env:"UPSTREAM_KEEPALIVE" envDefault:"true"`
		KeepaliveInterval time.Duration `env:"UPSTREAM_KEEPALIVE_INTERVAL" envDefault:"4m"`
	}

	Session struct {
		CookieName   string `env:"SESSION_COOKIE_NAME" envDefault:"qfs_session"`
		CookieSecure bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
		// TTL of the durable tier; 0 keeps sessions until logout, matching
		// the original app where only an upstream 401 ended a session.
		TTL time.Duration `env:"SESSION_TTL" envDefault:"0"`
	}

	Prices struct {
		BaseURL         string        `env:"PRICES_BASE_URL" envDefault:"https://api.coingecko.com"`
		RefreshInterval time.Duration `env:"PRICES_REFRESH_INTERVAL" envDefault:"5h"`
		Timeout         time.Duration `env:"PRICES_TIMEOUT" envDefault:"10s"`
	}
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func Load() (*Config, error) {
	// A missing .env file is fine; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
