package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// setupAndRestoreEnv saves original env vars and sets new ones for testing.
func setupAndRestoreEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()
	originalEnv := make(map[string]string)
	for key := range envVars {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	for key, value := range envVars {
		os.Setenv(key, value)
	}
	return func() {
		for key := range envVars {
			os.Unsetenv(key)
		}
		for key, value := range originalEnv {
			if value != "" {
				os.Setenv(key, value)
			}
		}
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{})
	defer restore()

	cfg := LoadFromEnv()
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, int64(16), cfg.Tournament.ChampionshipGameID)
	assert.Equal(t, 500*time.Millisecond, cfg.Tournament.SaveDebounce)
	assert.Equal(t, 10, cfg.Tournament.LeaderboardLimit)
	assert.False(t, cfg.Redis.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{
		"SERVER_PORT":          ":9090",
		"LOG_LEVEL":            "debug",
		"GIN_MODE":             "debug",
		"AUTH_SECRET":          "a-very-long-test-secret",
		"REDIS_URL":            "redis://localhost:6379/0",
		"CHAMPIONSHIP_GAME_ID": "21",
		"SAVE_DEBOUNCE":        "2s",
		"AUTH_ADMIN_SUBJECTS":  "scorer, director",
	})
	defer restore()

	cfg := LoadFromEnv()
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, []string{"scorer", "director"}, cfg.Auth.AdminSubjects)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, int64(21), cfg.Tournament.ChampionshipGameID)
	assert.Equal(t, 2*time.Second, cfg.Tournament.SaveDebounce)
}

func validConfig() Config {
	return Config{
		Server: validServer(),
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
		},
		Tournament: TournamentConfig{
			ChampionshipGameID: 16,
			DefaultInnings:     7,
			SaveDebounce:       500 * time.Millisecond,
			LeaderboardLimit:   10,
			WriteRateLimit:     10,
			WriteRateBurst:     20,
		},
		GinMode: "release",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		err := validConfig().Validate()
		assert.NoError(t, err)
	})

	t.Run("invalid server config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server config validation failed")
	})

	t.Run("invalid logger config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger config validation failed")
	})

	t.Run("short auth secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.Secret = "short"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "auth config validation failed")
	})

	t.Run("redis without stream", func(t *testing.T) {
		cfg := validConfig()
		cfg.Redis = RedisConfig{URL: "redis://localhost:6379", CacheTTL: time.Second}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis config validation failed")
	})

	t.Run("invalid tournament config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Tournament.ChampionshipGameID = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "tournament config validation failed")
	})

	t.Run("invalid gin mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.GinMode = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid GIN_MODE")
	})

	t.Run("valid gin modes", func(t *testing.T) {
		validModes := []string{"debug", "release", "test"}
		for _, mode := range validModes {
			cfg := validConfig()
			cfg.GinMode = mode
			err := cfg.Validate()
			assert.NoError(t, err, "mode %s should be valid", mode)
		}
	})
}

func TestTournamentConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TournamentConfig)
	}{
		{name: "zero innings", mutate: func(c *TournamentConfig) { c.DefaultInnings = 0 }},
		{name: "negative debounce", mutate: func(c *TournamentConfig) { c.SaveDebounce = -time.Second }},
		{name: "zero leaderboard limit", mutate: func(c *TournamentConfig) { c.LeaderboardLimit = 0 }},
		{name: "zero burst", mutate: func(c *TournamentConfig) { c.WriteRateBurst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig().Tournament
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("zero debounce saves immediately", func(t *testing.T) {
		cfg := validConfig().Tournament
		cfg.SaveDebounce = 0
		assert.NoError(t, cfg.Validate())
	})
}
