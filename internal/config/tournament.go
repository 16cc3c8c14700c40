package config

import (
	"fmt"
	"time"
)

// TournamentConfig holds tournament and write-path tuning.
type TournamentConfig struct {
	// ChampionshipGameID is the game treated as the final when none is flagged.
	ChampionshipGameID int64
	// DefaultInnings is the grid length given to games without innings.
	DefaultInnings int
	// SaveDebounce delays persistence so bursts of edits are written once.
	SaveDebounce time.Duration
	// LeaderboardLimit caps each leaderboard.
	LeaderboardLimit int
	// WriteRateLimit is the sustained per-IP request rate on admin endpoints.
	WriteRateLimit float64
	// WriteRateBurst is the per-IP burst on admin endpoints.
	WriteRateBurst int
	// SeedFile is an optional YAML fixture loaded on an empty database.
	SeedFile string
}

// LoadTournamentConfigFromEnv loads tournament configuration from environment variables.
func LoadTournamentConfigFromEnv() TournamentConfig {
	return TournamentConfig{
		ChampionshipGameID: GetEnvInt64("CHAMPIONSHIP_GAME_ID", 16),
		DefaultInnings:     GetEnvInt("DEFAULT_INNINGS", 7),
		SaveDebounce:       GetEnvDuration("SAVE_DEBOUNCE", 500*time.Millisecond),
		LeaderboardLimit:   GetEnvInt("LEADERBOARD_LIMIT", 10),
		WriteRateLimit:     GetEnvFloat("WRITE_RATE_LIMIT", 10),
		WriteRateBurst:     GetEnvInt("WRITE_RATE_BURST", 20),
		SeedFile:           GetEnv("SEED_FILE", ""),
	}
}

// Validate validates tournament configuration.
func (c TournamentConfig) Validate() error {
	if c.ChampionshipGameID <= 0 {
		return fmt.Errorf("CHAMPIONSHIP_GAME_ID must be positive")
	}
	if c.DefaultInnings <= 0 {
		return fmt.Errorf("DEFAULT_INNINGS must be positive")
	}
	if c.SaveDebounce < 0 {
		return fmt.Errorf("SAVE_DEBOUNCE must not be negative")
	}
	if c.LeaderboardLimit <= 0 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be positive")
	}
	if c.WriteRateLimit <= 0 || c.WriteRateBurst <= 0 {
		return fmt.Errorf("write rate limit and burst must be positive")
	}
	return nil
}
