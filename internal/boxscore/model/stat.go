// Package model provides the per-game batting and pitching rows.
package model

import "github.com/festy23/softball_scoreboard/internal/engine"

// BattingStat matches the batting_stats table. One row per player and game.
type BattingStat struct {
	ID               int64 `gorm:"primaryKey;column:id"`
	PlayerID         int64 `gorm:"column:player_id;not null"`
	GameID           int64 `gorm:"column:game_id;not null"`
	PlateAppearances int   `gorm:"column:plate_appearances"`
	AtBats           int   `gorm:"column:at_bats"`
	Runs             int   `gorm:"column:runs"`
	Hits             int   `gorm:"column:hits"`
	Doubles          int   `gorm:"column:doubles"`
	Triples          int   `gorm:"column:triples"`
	HomeRuns         int   `gorm:"column:home_runs"`
	RBI              int   `gorm:"column:rbi"`
	Walks            int   `gorm:"column:walks"`
	HitByPitch       int   `gorm:"column:hit_by_pitch"`
	SacHits          int   `gorm:"column:sac_hits"`
	SacFlies         int   `gorm:"column:sac_flies"`
	StrikeOuts       int   `gorm:"column:strike_outs"`
	StolenBases      int   `gorm:"column:stolen_bases"`
}

// TableName specifies the table name for GORM.
func (BattingStat) TableName() string {
	return "batting_stats"
}

// BattingColumns lists the stat columns rewritten by an upsert.
var BattingColumns = []string{
	"plate_appearances", "at_bats", "runs", "hits", "doubles", "triples", "home_runs",
	"rbi", "walks", "hit_by_pitch", "sac_hits", "sac_flies", "strike_outs", "stolen_bases",
}

// NewBattingStat converts an engine row.
func NewBattingStat(s engine.BattingStat) BattingStat {
	return BattingStat{
		PlayerID:         s.PlayerID,
		GameID:           s.GameID,
		PlateAppearances: s.PlateAppearances,
		AtBats:           s.AtBats,
		Runs:             s.Runs,
		Hits:             s.Hits,
		Doubles:          s.Doubles,
		Triples:          s.Triples,
		HomeRuns:         s.HomeRuns,
		RBI:              s.RBI,
		Walks:            s.Walks,
		HitByPitch:       s.HitByPitch,
		SacHits:          s.SacrificeHits,
		SacFlies:         s.SacrificeFlies,
		StrikeOuts:       s.StrikeOuts,
		StolenBases:      s.StolenBases,
	}
}

// ToEngine converts the row to the engine's value.
func (b BattingStat) ToEngine() engine.BattingStat {
	return engine.BattingStat{
		PlayerID:         b.PlayerID,
		GameID:           b.GameID,
		PlateAppearances: b.PlateAppearances,
		AtBats:           b.AtBats,
		Runs:             b.Runs,
		Hits:             b.Hits,
		Doubles:          b.Doubles,
		Triples:          b.Triples,
		HomeRuns:         b.HomeRuns,
		RBI:              b.RBI,
		Walks:            b.Walks,
		HitByPitch:       b.HitByPitch,
		SacrificeHits:    b.SacHits,
		SacrificeFlies:   b.SacFlies,
		StrikeOuts:       b.StrikeOuts,
		StolenBases:      b.StolenBases,
	}
}

// PitchingStat matches the pitching_stats table.
type PitchingStat struct {
	ID             int64   `gorm:"primaryKey;column:id"`
	PlayerID       int64   `gorm:"column:player_id;not null"`
	GameID         int64   `gorm:"column:game_id;not null"`
	InningsPitched float64 `gorm:"column:innings_pitched"`
	Hits           int     `gorm:"column:hits"`
	Runs           int     `gorm:"column:runs"`
	EarnedRuns     int     `gorm:"column:earned_runs"`
	Walks          int     `gorm:"column:walks"`
	StrikeOuts     int     `gorm:"column:strike_outs"`
	HomeRuns       int     `gorm:"column:home_runs"`
	Wins           int     `gorm:"column:wins"`
	Losses         int     `gorm:"column:losses"`
	Saves          int     `gorm:"column:saves"`
}

// TableName specifies the table name for GORM.
func (PitchingStat) TableName() string {
	return "pitching_stats"
}

// PitchingColumns lists the stat columns rewritten by an upsert.
var PitchingColumns = []string{
	"innings_pitched", "hits", "runs", "earned_runs", "walks",
	"strike_outs", "home_runs", "wins", "losses", "saves",
}

// NewPitchingStat converts an engine row.
func NewPitchingStat(s engine.PitchingStat) PitchingStat {
	return PitchingStat{
		PlayerID:       s.PlayerID,
		GameID:         s.GameID,
		InningsPitched: s.InningsPitched,
		Hits:           s.Hits,
		Runs:           s.Runs,
		EarnedRuns:     s.EarnedRuns,
		Walks:          s.Walks,
		StrikeOuts:     s.StrikeOuts,
		HomeRuns:       s.HomeRuns,
		Wins:           s.Wins,
		Losses:         s.Losses,
		Saves:          s.Saves,
	}
}

// ToEngine converts the row to the engine's value.
func (p PitchingStat) ToEngine() engine.PitchingStat {
	return engine.PitchingStat{
		PlayerID:       p.PlayerID,
		GameID:         p.GameID,
		InningsPitched: p.InningsPitched,
		Hits:           p.Hits,
		Runs:           p.Runs,
		EarnedRuns:     p.EarnedRuns,
		Walks:          p.Walks,
		StrikeOuts:     p.StrikeOuts,
		HomeRuns:       p.HomeRuns,
		Wins:           p.Wins,
		Losses:         p.Losses,
		Saves:          p.Saves,
	}
}
