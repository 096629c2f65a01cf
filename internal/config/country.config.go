package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"country-service/internal/domain"
)

type AppConfig struct {
	Env      string
	HTTPAddr string
	GRPCAddr string

	// Field is what this deployment looks up.
	Field       domain.Field
	CORSEnabled bool

	DataFile    string
	DataURL     string
	DatabaseURL string

	RedisAddr  string
	RedisPass  string
	RateLimit  int
	RateWindow time.Duration
	RateBlock  time.Duration

	ShutdownTimeout time.Duration
}

func Load() (AppConfig, error) {
	var err error
	cfg := AppConfig{
		Env:         getEnv("APP_ENV", "production"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":5000"),
		GRPCAddr:    getEnv("GRPC_ADDR", ""),
		DataFile:    getEnv("DATA_FILE", ""),
		DataURL:     getEnv("DATA_URL", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		RedisPass:   getEnv("REDIS_PASS", ""),
	}

	if cfg.Field, err = domain.ParseField(getEnv("LOOKUP_FIELD", "capital")); err != nil {
		return cfg, err
	}
	if cfg.CORSEnabled, err = getEnvAsBool("CORS_ENABLED", false); err != nil {
		return cfg, err
	}
	if cfg.RateLimit, err = getEnvAsInt("RATE_LIMIT", 0); err != nil {
		return cfg, err
	}
	if cfg.RateWindow, err = getEnvAsDuration("RATE_WINDOW", time.Minute); err != nil {
		return cfg, err
	}
	if cfg.RateBlock, err = getEnvAsDuration("RATE_BLOCK", 10*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// RateLimitEnabled reports whether requests should go through the Redis limiter.
func (c AppConfig) RateLimitEnabled() bool {
	return c.RateLimit > 0 && c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
