package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Evaluator EvaluatorConfig
	Audit     AuditConfig
	App       AppConfig
}

type ServerConfig struct {
	Port               string   `env:"PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type StoreConfig struct {
	Backend    string `env:"STORE_BACKEND" envDefault:"sqlite"`
	Key        string `env:"STORE_KEY" envDefault:"user_projects"`
	ReadPolicy string `env:"STORE_READ_POLICY" envDefault:"lenient"`
	WriteMode  string `env:"STORE_WRITE_MODE" envDefault:"unsynchronized"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/advisor.db"`
	RedisURL   string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	DSN        string `env:"DB_DSN"`
}

type EvaluatorConfig struct {
	APIKey        string        `env:"GEMINI_API_KEY"`
	BaseURL       string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	Model         string        `env:"GEMINI_MODEL" envDefault:"gemini-pro"`
	Timeout       time.Duration `env:"EVALUATOR_TIMEOUT" envDefault:"60s"`
	RatePerMinute int           `env:"EVALUATOR_RATE_PER_MIN" envDefault:"30"`
}

type AuditConfig struct {
	// Schedule is a six-field cron spec (with seconds); empty disables the audit.
	Schedule string `env:"AUDIT_SCHEDULE" envDefault:"0 0 * * * *"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case "memory", "sqlite", "redis", "postgres":
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, sqlite, redis, postgres (got %q)", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("STORE_KEY is required")
	}
	if c.Store.Backend == "sqlite" && c.Store.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
	}
	if c.Store.Backend == "redis" && c.Store.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required for the redis backend")
	}
	if c.Store.Backend == "postgres" && c.Store.DSN == "" {
		return fmt.Errorf("DB_DSN is required for the postgres backend")
	}

	switch c.Store.ReadPolicy {
	case "lenient", "strict":
	default:
		return fmt.Errorf("STORE_READ_POLICY must be lenient or strict (got %q)", c.Store.ReadPolicy)
	}
	switch c.Store.WriteMode {
	case "unsynchronized", "serialized":
	default:
		return fmt.Errorf("STORE_WRITE_MODE must be unsynchronized or serialized (got %q)", c.Store.WriteMode)
	}

	if c.Evaluator.Timeout <= 0 {
		return fmt.Errorf("EVALUATOR_TIMEOUT must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
