package engine

import "sort"

// DefaultLeaderboardLimit is used when a ranker is called without a limit.
const DefaultLeaderboardLimit = 10

// Qualification rates per team game, in tenths.
const (
	battingPAPerGameTenths    = 21 // 2.1 plate appearances
	pitchingOutsPerGameTenths = 69 // 2.3 innings, i.e. 6.9 outs
)

// BattingLeader is a qualified batter with their rate stats.
type BattingLeader struct {
	PlayerID         int64   `json:"player_id"`
	Name             string  `json:"name"`
	Number           int     `json:"number"`
	TeamName         string  `json:"team_name"`
	GamesPlayed      int     `json:"games_played"`
	PlateAppearances int     `json:"plate_appearances"`
	AtBats           int     `json:"at_bats"`
	Hits             int     `json:"hits"`
	WalksHBP         int     `json:"bb_hbp"`
	Sacrifices       int     `json:"sh_sf"`
	HomeRuns         int     `json:"home_runs"`
	RBI              int     `json:"rbi"`
	Runs             int     `json:"runs"`
	Avg              float64 `json:"avg"`
}

// PitchingLeader is a qualified pitcher with their rate stats.
type PitchingLeader struct {
	PlayerID       int64   `json:"player_id"`
	Name           string  `json:"name"`
	Number         int     `json:"number"`
	TeamName       string  `json:"team_name"`
	GamesPlayed    int     `json:"games_played"`
	InningsPitched float64 `json:"innings_pitched"`
	Outs           int     `json:"outs"`
	Hits           int     `json:"hits"`
	EarnedRuns     int     `json:"earned_runs"`
	Walks          int     `json:"walks"`
	StrikeOuts     int     `json:"strike_outs"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Saves          int     `json:"saves"`
	ERA            float64 `json:"era"`
}

// BattingQualified reports whether pa plate appearances meet the minimum
// for a team that has played teamGames games.
func BattingQualified(pa, teamGames int) bool {
	return teamGames >= 1 && pa*10 >= teamGames*battingPAPerGameTenths
}

// PitchingQualified reports whether outs recorded meet the innings minimum
// for a team that has played teamGames games.
func PitchingQualified(outs, teamGames int) bool {
	return teamGames >= 1 && outs*10 >= teamGames*pitchingOutsPerGameTenths
}

// Average returns hits per at-bat, zero without at-bats.
func Average(hits, atBats int) float64 {
	if atBats == 0 {
		return 0
	}
	return float64(hits) / float64(atBats)
}

// ERA returns earned runs per seven-inning game, zero without outs.
func ERA(earnedRuns, outs int) float64 {
	if outs == 0 {
		return 0
	}
	return float64(earnedRuns) * 21 / float64(outs)
}

// RankBatting returns the qualified batters ordered by average, then home
// runs, truncated to limit. teamGames maps team ids to completed games.
func RankBatting(totals map[int64]PlayerTotals, teamGames map[int64]int, limit int) []BattingLeader {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	leaders := make([]BattingLeader, 0)
	for _, id := range sortedPlayerIDs(totals) {
		pt := totals[id]
		b := pt.Batting
		if !BattingQualified(b.PlateAppearances, teamGames[pt.Player.TeamID]) {
			continue
		}
		leaders = append(leaders, BattingLeader{
			PlayerID:         id,
			Name:             pt.Player.Name,
			Number:           pt.Player.Number,
			TeamName:         pt.TeamName,
			GamesPlayed:      b.GamesPlayed,
			PlateAppearances: b.PlateAppearances,
			AtBats:           b.AtBats,
			Hits:             b.Hits,
			WalksHBP:         b.Walks + b.HitByPitch,
			Sacrifices:       b.SacrificeHits + b.SacrificeFlies,
			HomeRuns:         b.HomeRuns,
			RBI:              b.RBI,
			Runs:             b.Runs,
			Avg:              Average(b.Hits, b.AtBats),
		})
	}

	sort.SliceStable(leaders, func(i, j int) bool {
		a, b := leaders[i], leaders[j]
		if a.Avg != b.Avg {
			return a.Avg > b.Avg
		}
		if a.HomeRuns != b.HomeRuns {
			return a.HomeRuns > b.HomeRuns
		}
		return a.PlayerID < b.PlayerID
	})

	if len(leaders) > limit {
		leaders = leaders[:limit]
	}
	return leaders
}

// RankPitching returns the qualified pitchers ordered by wins, then ERA
// ascending, then strikeouts, truncated to limit.
func RankPitching(totals map[int64]PlayerTotals, teamGames map[int64]int, limit int) []PitchingLeader {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	leaders := make([]PitchingLeader, 0)
	for _, id := range sortedPlayerIDs(totals) {
		pt := totals[id]
		p := pt.Pitching
		if !PitchingQualified(p.Outs, teamGames[pt.Player.TeamID]) {
			continue
		}
		leaders = append(leaders, PitchingLeader{
			PlayerID:       id,
			Name:           pt.Player.Name,
			Number:         pt.Player.Number,
			TeamName:       pt.TeamName,
			GamesPlayed:    p.GamesPlayed,
			InningsPitched: OutsToInnings(p.Outs),
			Outs:           p.Outs,
			Hits:           p.Hits,
			EarnedRuns:     p.EarnedRuns,
			Walks:          p.Walks,
			StrikeOuts:     p.StrikeOuts,
			Wins:           p.Wins,
			Losses:         p.Losses,
			Saves:          p.Saves,
			ERA:            ERA(p.EarnedRuns, p.Outs),
		})
	}

	sort.SliceStable(leaders, func(i, j int) bool {
		a, b := leaders[i], leaders[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.ERA != b.ERA {
			return a.ERA < b.ERA
		}
		if a.StrikeOuts != b.StrikeOuts {
			return a.StrikeOuts > b.StrikeOuts
		}
		return a.PlayerID < b.PlayerID
	})

	if len(leaders) > limit {
		leaders = leaders[:limit]
	}
	return leaders
}
