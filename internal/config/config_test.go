package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)

	sc := cfg.Summary.Client()
	assert.Equal(t, "http://ollama:11434", sc.BaseURL)
	assert.Equal(t, 30*time.Second, sc.HealthTimeout)
	assert.Equal(t, 180*time.Second, sc.GenerateTimeout)
	assert.Equal(t, 3, sc.HealthAttempts)
	assert.Equal(t, 3, sc.MaxAttempts)
	assert.Equal(t, time.Second, sc.BackoffBase)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SUMMARY_BASE_URL", "http://localhost:11434")
	t.Setenv("SUMMARY_GENERATE_TIMEOUT", "2m")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "http://localhost:11434", cfg.Summary.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Summary.GenerateTimeout)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestParse_ReleaseRequiresSecret(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Parse()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBUser: "u", DBPass: "p", DBName: "books",
		DBPort: "5432", DBSSLMode: "disable", TZ: "UTC",
	}

	assert.Equal(t,
		"host=db user=u password=p dbname=books port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN(),
	)
}
