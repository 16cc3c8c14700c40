// Package model provides the derived standings and leaderboard views.
package model

import "github.com/festy23/softball_scoreboard/internal/engine"

// StandingRow is a standings row with its display percentage.
type StandingRow struct {
	engine.Standing
	PctText string `json:"pct_text"`
}

// StandingsResponse is the standings table. Rankable is false while a tied
// preliminary game blocks ranking; Standings is then empty.
type StandingsResponse struct {
	Version   uint64        `json:"version"`
	Rankable  bool          `json:"rankable"`
	Standings []StandingRow `json:"standings"`
	Champion  string        `json:"champion"`
}

// LeadersResponse holds both leaderboards.
type LeadersResponse struct {
	Version  uint64                  `json:"version"`
	Batting  []engine.BattingLeader  `json:"batting"`
	Pitching []engine.PitchingLeader `json:"pitching"`
}
