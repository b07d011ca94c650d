package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/snnyvrz/shelfreview/internal/summary"
)

const devJWTSecret = "dev-only-insecure-secret"

type Config struct {
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	TZ       string `env:"TZ" envDefault:"UTC"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPass     string `env:"DB_PASS"`
	DBName     string `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode  string `env:"DB_SSLMODE"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"shelfreview.db"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"shelfreview"`
	JWTAccessTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`

	Summary SummaryConfig `envPrefix:"SUMMARY_"`
}

type SummaryConfig struct {
	BaseURL         string        `env:"BASE_URL" envDefault:"http://ollama:11434"`
	Model           string        `env:"MODEL" envDefault:"mistral"`
	HealthPath      string        `env:"HEALTH_PATH" envDefault:"/api/tags"`
	GeneratePath    string        `env:"GENERATE_PATH" envDefault:"/api/generate"`
	HealthTimeout   time.Duration `env:"HEALTH_TIMEOUT" envDefault:"30s"`
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"180s"`
	HealthAttempts  int           `env:"HEALTH_ATTEMPTS" envDefault:"3"`
	MaxAttempts     int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	BackoffBase     time.Duration `env:"BACKOFF_BASE" envDefault:"1s"`
	Temperature     float64       `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens       int           `env:"MAX_TOKENS" envDefault:"500"`

	// RateLimit is the sustained number of summary requests per second the
	// process accepts; RateBurst is the bucket size.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"1"`
	RateBurst int     `env:"RATE_BURST" envDefault:"5"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			return nil, errors.New("JWT_SECRET is required in release mode")
		}
		cfg.JWTSecret = devJWTSecret
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

// Client converts the settings into a summary.Client configuration. Breaker
// settings keep their defaults.
func (s SummaryConfig) Client() summary.Config {
	cfg := summary.DefaultConfig()
	cfg.BaseURL = s.BaseURL
	cfg.Model = s.Model
	cfg.HealthPath = s.HealthPath
	cfg.GeneratePath = s.GeneratePath
	cfg.HealthTimeout = s.HealthTimeout
	cfg.GenerateTimeout = s.GenerateTimeout
	cfg.HealthAttempts = s.HealthAttempts
	cfg.MaxAttempts = s.MaxAttempts
	cfg.BackoffBase = s.BackoffBase
	cfg.Temperature = s.Temperature
	cfg.MaxTokens = s.MaxTokens
	return cfg
}
