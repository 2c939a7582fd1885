// Package config содержит логику чтения конфигурации витрины.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации витрины.
type Config struct {
	RunAddress        string        `env:"RUN_ADDRESS"`
	DatabaseURI       string        `env:"DATABASE_URI"`
	BackendAPIAddress string        `env:"BACKEND_API_ADDRESS"`
	RedisAddress      string        `env:"REDIS_ADDRESS"`
	SessionSecret     string        `env:"SESSION_SECRET"`
	SessionIdleTTL    time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envBackendAddress := cfg.BackendAPIAddress
	envRedisAddress := cfg.RedisAddress
	envSessionSecret := cfg.SessionSecret

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for local storage")
	flag.StringVar(&cfg.BackendAPIAddress, "b", "localhost:8000", "flower shop API address")
	flag.StringVar(&cfg.RedisAddress, "r", "", "redis address for local storage")
	flag.StringVar(&cfg.SessionSecret, "s", "", "session cookie signing secret")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envBackendAddress != "" {
		cfg.BackendAPIAddress = envBackendAddress
	}
	if envRedisAddress != "" {
		cfg.RedisAddress = envRedisAddress
	}
	if envSessionSecret != "" {
		cfg.SessionSecret = envSessionSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.SessionIdleTTL <= 0 {
		return nil, fmt.Errorf("session idle ttl must be positive, got %s", cfg.SessionIdleTTL)
	}

	return cfg, nil
}
