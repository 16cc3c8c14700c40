package config

import (
	"fmt"
	"time"
)

// RedisConfig holds Redis connection settings for the event stream and the
// snapshot cache. An empty URL turns both off.
type RedisConfig struct {
	URL          string
	Stream       string
	StreamMaxLen int64
	CacheTTL     time.Duration
}

// LoadRedisConfigFromEnv loads Redis configuration from environment variables.
func LoadRedisConfigFromEnv() RedisConfig {
	return RedisConfig{
		URL:          GetEnv("REDIS_URL", ""),
		Stream:       GetEnv("REDIS_STREAM", "scoreboard:events"),
		StreamMaxLen: GetEnvInt64("REDIS_STREAM_MAXLEN", 1000),
		CacheTTL:     GetEnvDuration("REDIS_CACHE_TTL", 30*time.Second),
	}
}

// Enabled reports whether a Redis URL was configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// Validate validates Redis configuration.
func (c RedisConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Stream == "" {
		return fmt.Errorf("REDIS_STREAM must not be empty")
	}
	if c.StreamMaxLen < 0 {
		return fmt.Errorf("REDIS_STREAM_MAXLEN must not be negative")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CacheTTL must be greater than 0")
	}
	return nil
}
