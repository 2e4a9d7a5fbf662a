package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTPConfig
	Postgres PostgresConfig
	AdsAPI   AdsAPIConfig
	Redis    RedisConfig
	Log      LogConfig
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" env-separator:"," env-default:"*"`
}

type PostgresConfig struct {
	DSN             string        `env:"POSTGRES_DSN"`
	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" env-default:"20"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" env-default:"30m"`
}

type AdsAPIConfig struct {
	BaseURL        string        `env:"ADS_API_BASE_URL"`
	DeveloperToken string        `env:"ADS_API_DEVELOPER_TOKEN"`
	AccessToken    string        `env:"ADS_API_ACCESS_TOKEN"`
	Timeout        time.Duration `env:"ADS_API_TIMEOUT" env-default:"10s"`
	RatePerSecond  float64       `env:"ADS_API_RATE_PER_SECOND" env-default:"5"`
	Burst          int           `env:"ADS_API_BURST" env-default:"5"`
	BreakerTimeout time.Duration `env:"ADS_API_BREAKER_TIMEOUT" env-default:"30s"`
}

// RedisConfig: an empty Addr disables the row cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"REDIS_TTL" env-default:"5m"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

// ValidateServer checks what cmd/api cannot start without. The ads API is
// optional; its settings are only checked when a base URL is given.
func (c *Config) ValidateServer() error {
	if c.Postgres.DSN == "" {
		return errors.New("POSTGRES_DSN is not set")
	}
	if !c.AdsAPIEnabled() {
		return nil
	}
	return c.ValidateAdsAPI()
}

func (c *Config) ValidateAdsAPI() error {
	if c.AdsAPI.BaseURL == "" {
		return errors.New("ADS_API_BASE_URL is not set")
	}
	if c.AdsAPI.RatePerSecond <= 0 {
		return fmt.Errorf("ADS_API_RATE_PER_SECOND must be positive, got %v", c.AdsAPI.RatePerSecond)
	}
	return nil
}

func (c *Config) AdsAPIEnabled() bool {
	return c.AdsAPI.BaseURL != ""
}

func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != ""
}
