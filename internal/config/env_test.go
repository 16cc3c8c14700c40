package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SCOREBOARD_NAME", "copa")
	t.Setenv("SCOREBOARD_BLANK", "")

	assert.Equal(t, "copa", GetEnv("SCOREBOARD_NAME", "default"))
	assert.Equal(t, "default", GetEnv("SCOREBOARD_BLANK", "default"), "empty counts as unset")
	assert.Equal(t, "default", GetEnv("SCOREBOARD_UNSET", "default"))
}

func TestGetEnvNumbers(t *testing.T) {
	t.Setenv("INNINGS", "9")
	t.Setenv("INNINGS_BAD", "nine")
	t.Setenv("GAME_ID", "-16")
	t.Setenv("RATE", "2.5")
	t.Setenv("RATE_BAD", "fast")

	assert.Equal(t, 9, GetEnvInt("INNINGS", 7))
	assert.Equal(t, 7, GetEnvInt("INNINGS_BAD", 7))
	assert.Equal(t, 7, GetEnvInt("INNINGS_UNSET", 7))
	assert.Equal(t, int64(-16), GetEnvInt64("GAME_ID", 16))
	assert.Equal(t, int64(16), GetEnvInt64("INNINGS_BAD", 16))
	assert.Equal(t, 2.5, GetEnvFloat("RATE", 1))
	assert.Equal(t, 1.5, GetEnvFloat("RATE_BAD", 1.5))
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{value: "250ms", want: 250 * time.Millisecond},
		{value: "1h30m15s", want: time.Hour + 30*time.Minute + 15*time.Second},
		{value: "soon", want: time.Second},
		{value: "", want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SAVE_DEBOUNCE_TEST", tt.value)

			assert.Equal(t, tt.want, GetEnvDuration("SAVE_DEBOUNCE_TEST", time.Second))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{value: "true", want: true},
		{value: "1", want: true},
		{value: "false", fallback: true, want: false},
		{value: "0", fallback: true, want: false},
		{value: "maybe", fallback: true, want: true},
		{value: "", fallback: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("BOOL_TEST", tt.value)

			assert.Equal(t, tt.want, GetEnvBool("BOOL_TEST", tt.fallback))
		})
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("ORIGINS", " https://a.example, https://b.example ,, ")
	t.Setenv("ORIGINS_BLANK", " , ")

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetEnvList("ORIGINS", nil))
	assert.Equal(t, []string{"x"}, GetEnvList("ORIGINS_BLANK", []string{"x"}))
	assert.Nil(t, GetEnvList("ORIGINS_UNSET", nil))
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	})

	t.Run("existing variables win", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("DOTENV_NEW=from_file\nDOTENV_SET=from_file\n"), 0o600))
		t.Setenv("DOTENV_SET", "from_env")
		t.Setenv("DOTENV_NEW", "")
		require.NoError(t, os.Unsetenv("DOTENV_NEW"))

		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "from_file", os.Getenv("DOTENV_NEW"))
		assert.Equal(t, "from_env", os.Getenv("DOTENV_SET"))
	})
}
