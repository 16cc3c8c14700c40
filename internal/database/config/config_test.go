package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withEnv sets envVars for the duration of the test.
func withEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for key, value := range envVars {
		t.Setenv(key, value)
	}
}

func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_PORT", "DB_SSLMODE", "DB_TIMEZONE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		clearDBEnv(t)

		cfg := LoadConfigFromEnv()
		assert.Equal(t, Config{
			Host:     "localhost",
			User:     "postgres",
			Password: "postgres",
			DBName:   "softball_scoreboard",
			Port:     "5432",
			SSLMode:  "disable",
			TimeZone: "UTC",
		}, cfg)
	})

	t.Run("custom values", func(t *testing.T) {
		clearDBEnv(t)
		withEnv(t, map[string]string{
			"DB_HOST":     "db",
			"DB_USER":     "scorer",
			"DB_PASSWORD": "s3cret",
			"DB_NAME":     "liga",
			"DB_PORT":     "6543",
			"DB_SSLMODE":  "require",
			"DB_TIMEZONE": "America/Caracas",
		})

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "db", cfg.Host)
		assert.Equal(t, "liga", cfg.DBName)
		assert.Equal(t, "America/Caracas", cfg.TimeZone)
		assert.Empty(t, cfg.URL)
	})

	t.Run("database url", func(t *testing.T) {
		clearDBEnv(t)
		withEnv(t, map[string]string{"DATABASE_URL": "postgres://u:p@db:5432/liga"})

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "postgres://u:p@db:5432/liga", BuildDSN(cfg))
	})
}

func TestBuildDSN(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		User:     "postgres",
		Password: "postgres",
		DBName:   "softball_scoreboard",
		Port:     "5432",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	assert.Equal(t,
		"host=localhost user=postgres password=postgres dbname=softball_scoreboard port=5432 sslmode=disable TimeZone=UTC",
		BuildDSN(cfg))
}

func TestSanitizeError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, SanitizeError(nil, Config{Password: "secret"}))
	})

	t.Run("full DSN in error message", func(t *testing.T) {
		cfg := Config{
			Host:     "localhost",
			User:     "admin",
			Password: "mypass",
			DBName:   "prod",
			Port:     "5432",
			SSLMode:  "require",
			TimeZone: "UTC",
		}
		err := errors.New("failed to connect to `" + BuildDSN(cfg) + "`")

		got := SanitizeError(err, cfg)
		require.Error(t, got)
		assert.Contains(t, got.Error(), "failed to connect to database")
		assert.Contains(t, got.Error(), "password=***")
		assert.NotContains(t, got.Error(), "mypass")
	})

	t.Run("bare password", func(t *testing.T) {
		got := SanitizeError(errors.New("auth failed for secret123"), Config{Password: "secret123"})
		assert.NotContains(t, got.Error(), "secret123")
	})

	t.Run("database url", func(t *testing.T) {
		cfg := Config{URL: "postgres://u:hunter2@db/liga"}
		got := SanitizeError(errors.New("dial postgres://u:hunter2@db/liga: refused"), cfg)
		assert.NotContains(t, got.Error(), "hunter2")
		assert.Contains(t, got.Error(), "<database url>")
	})
}

func TestLoadRetryConfigFromEnv(t *testing.T) {
	withEnv(t, map[string]string{
		"DB_RETRY_MAX_ATTEMPTS":  "2",
		"DB_RETRY_INITIAL_DELAY": "10ms",
		"DB_RETRY_MULTIPLIER":    "1.5",
	})

	cfg := LoadRetryConfigFromEnv()
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Equal(t, 1.5, cfg.Multiplier)
	assert.Contains(t, cfg.RetryableErrors, "connection refused")
}
