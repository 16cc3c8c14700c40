package engine

import (
	"math"
	"sort"
)

// InningsToOuts converts baseball-notation innings pitched to outs.
// 1.2 is one full inning plus two outs.
func InningsToOuts(ip float64) int {
	if ip <= 0 {
		return 0
	}
	whole := math.Floor(ip)
	partial := int(math.Round((ip - whole) * 10))
	return int(whole)*3 + partial
}

// OutsToInnings converts outs back to baseball-notation innings pitched.
func OutsToInnings(outs int) float64 {
	if outs <= 0 {
		return 0
	}
	return float64(outs/3) + float64(outs%3)/10
}

// BattingTotals are cumulative batting counts.
type BattingTotals struct {
	GamesPlayed      int `json:"games_played"`
	PlateAppearances int `json:"plate_appearances"`
	AtBats           int `json:"at_bats"`
	Runs             int `json:"runs"`
	Hits             int `json:"hits"`
	Doubles          int `json:"doubles"`
	Triples          int `json:"triples"`
	HomeRuns         int `json:"home_runs"`
	RBI              int `json:"rbi"`
	Walks            int `json:"walks"`
	HitByPitch       int `json:"hit_by_pitch"`
	SacrificeHits    int `json:"sac_hits"`
	SacrificeFlies   int `json:"sac_flies"`
	StrikeOuts       int `json:"strike_outs"`
	StolenBases      int `json:"stolen_bases"`
}

func (b *BattingTotals) add(s BattingStat) {
	b.GamesPlayed++
	b.PlateAppearances += s.PlateAppearances
	b.AtBats += s.AtBats
	b.Runs += s.Runs
	b.Hits += s.Hits
	b.Doubles += s.Doubles
	b.Triples += s.Triples
	b.HomeRuns += s.HomeRuns
	b.RBI += s.RBI
	b.Walks += s.Walks
	b.HitByPitch += s.HitByPitch
	b.SacrificeHits += s.SacrificeHits
	b.SacrificeFlies += s.SacrificeFlies
	b.StrikeOuts += s.StrikeOuts
	b.StolenBases += s.StolenBases
}

// PitchingTotals are cumulative pitching counts. Outs is authoritative and
// InningsPitched is derived from it.
type PitchingTotals struct {
	GamesPlayed    int     `json:"games_played"`
	Outs           int     `json:"outs"`
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

func (p *PitchingTotals) add(s PitchingStat) {
	p.GamesPlayed++
	p.Outs += InningsToOuts(s.InningsPitched)
	p.InningsPitched = OutsToInnings(p.Outs)
	p.Hits += s.Hits
	p.Runs += s.Runs
	p.EarnedRuns += s.EarnedRuns
	p.Walks += s.Walks
	p.StrikeOuts += s.StrikeOuts
	p.HomeRuns += s.HomeRuns
	p.Wins += s.Wins
	p.Losses += s.Losses
	p.Saves += s.Saves
}

// PlayerTotals is a player's cumulative line across completed games.
type PlayerTotals struct {
	Player   Player         `json:"player"`
	TeamName string         `json:"team_name"`
	Batting  BattingTotals  `json:"batting"`
	Pitching PitchingTotals `json:"pitching"`
}

// AggregateStats folds the box-score rows of completed games into per-player
// totals. Every roster player is present, including those without rows.
// Rows for players missing from the roster are dropped.
func AggregateStats(games []Game, teams []Team) map[int64]PlayerTotals {
	totals := make(map[int64]*PlayerTotals)
	for _, t := range teams {
		for _, p := range t.Players {
			totals[p.ID] = &PlayerTotals{Player: p, TeamName: t.Name}
		}
	}

	for _, g := range games {
		if !g.Completed() {
			continue
		}
		for _, s := range g.BattingStats {
			if pt, ok := totals[s.PlayerID]; ok {
				pt.Batting.add(s)
			}
		}
		for _, s := range g.PitchingStats {
			if pt, ok := totals[s.PlayerID]; ok {
				pt.Pitching.add(s)
			}
		}
	}

	out := make(map[int64]PlayerTotals, len(totals))
	for id, pt := range totals {
		out[id] = *pt
	}
	return out
}

// TeamGamesPlayed counts the completed games each roster team took part in.
func TeamGamesPlayed(games []Game, teams []Team) map[int64]int {
	played := make(map[int64]int, len(teams))
	for _, t := range teams {
		played[t.ID] = 0
	}
	for _, g := range games {
		if !g.Completed() {
			continue
		}
		if _, ok := played[g.Team1ID]; ok {
			played[g.Team1ID]++
		}
		if g.Team2ID != g.Team1ID {
			if _, ok := played[g.Team2ID]; ok {
				played[g.Team2ID]++
			}
		}
	}
	return played
}

// sortedPlayerIDs returns the keys of totals in ascending order.
func sortedPlayerIDs(totals map[int64]PlayerTotals) []int64 {
	ids := make([]int64, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
