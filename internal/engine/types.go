// Package engine implements the tournament standings and statistics engine.
//
// Every function in this package is pure: it takes snapshots of games, rosters
// and box-score rows and returns new values without mutating its inputs. The
// surrounding controller owns state and persistence and calls into the engine
// after each mutation.
package engine

import (
	"strconv"
	"strings"
)

// Team is a tournament team and the players on its roster.
type Team struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// Player belongs to exactly one team.
type Player struct {
	ID           int64  `json:"id"`
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PlaceOfBirth string `json:"place_of_birth"`
	TeamID       int64  `json:"team_id"`
}

// Game is a single scheduled game.
//
// Team ids are zero while unassigned. Scores, hits and errors are kept as the
// text entered by the scorer; an empty score means the game has not been
// completed.
type Game struct {
	ID             int64          `json:"id"`
	Team1ID        int64          `json:"team1_id"`
	Team2ID        int64          `json:"team2_id"`
	Score1         string         `json:"score1"`
	Score2         string         `json:"score2"`
	Hits1          string         `json:"hits1"`
	Hits2          string         `json:"hits2"`
	Errors1        string         `json:"errors1"`
	Errors2        string         `json:"errors2"`
	Innings        Innings        `json:"innings"`
	IsChampionship bool           `json:"is_championship"`
	Day            string         `json:"day"`
	Time           string         `json:"time"`
	BattingStats   []BattingStat  `json:"batting_stats,omitempty"`
	PitchingStats  []PitchingStat `json:"pitching_stats,omitempty"`
}

// Completed reports whether both scores have been entered.
func (g Game) Completed() bool {
	return strings.TrimSpace(g.Score1) != "" && strings.TrimSpace(g.Score2) != ""
}

// Tied reports whether the game is completed with equal scores.
func (g Game) Tied() bool {
	return g.Completed() && ParseNumber(g.Score1) == ParseNumber(g.Score2)
}

// Clone returns a deep copy of the game.
func (g Game) Clone() Game {
	out := g
	out.Innings = g.Innings.Clone()
	if g.BattingStats != nil {
		out.BattingStats = append([]BattingStat(nil), g.BattingStats...)
	}
	if g.PitchingStats != nil {
		out.PitchingStats = append([]PitchingStat(nil), g.PitchingStats...)
	}
	return out
}

// BattingStat is one player's batting line for one game.
type BattingStat struct {
	PlayerID         int64 `json:"player_id"`
	GameID           int64 `json:"game_id"`
	PlateAppearances int   `json:"plate_appearances"`
	AtBats           int   `json:"at_bats"`
	Runs             int   `json:"runs"`
	Hits             int   `json:"hits"`
	Doubles          int   `json:"doubles"`
	Triples          int   `json:"triples"`
	HomeRuns         int   `json:"home_runs"`
	RBI              int   `json:"rbi"`
	Walks            int   `json:"walks"`
	HitByPitch       int   `json:"hit_by_pitch"`
	SacrificeHits    int   `json:"sac_hits"`
	SacrificeFlies   int   `json:"sac_flies"`
	StrikeOuts       int   `json:"strike_outs"`
	StolenBases      int   `json:"stolen_bases"`
}

// PitchingStat is one player's pitching line for one game.
//
// InningsPitched uses baseball notation: the fractional digit counts outs in
// the partial inning, so 1.2 means one inning and two outs.
type PitchingStat struct {
	PlayerID       int64   `json:"player_id"`
	GameID         int64   `json:"game_id"`
	InningsPitched float64 `json:"innings_pitched"`
	Hits           int     `json:"hits"`
	Runs           int     `json:"runs"`
	EarnedRuns     int     `json:"earned_runs"`
	Walks          int     `json:"walks"`
	StrikeOuts     int     `json:"strike_outs"`
	HomeRuns       int     `json:"home_runs"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Saves          int     `json:"saves"`
}

// ParseNumber converts scorer-entered text to an integer.
// Empty, sentinel and unparseable values are zero.
func ParseNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Sentinel) {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Preliminary returns the round-robin games, leaving out the championship game.
func Preliminary(games []Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if !g.IsChampionship {
			out = append(out, g)
		}
	}
	return out
}

// teamIndex maps team ids to their position in the roster slice.
func teamIndex(teams []Team) map[int64]int {
	idx := make(map[int64]int, len(teams))
	for i, t := range teams {
		idx[t.ID] = i
	}
	return idx
}
