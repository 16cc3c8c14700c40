package engine

import (
	"fmt"
	"math"
	"sort"
)

// Standing is one team's row in the standings table.
type Standing struct {
	TeamID   int64   `json:"team_id"`
	TeamName string  `json:"team_name"`
	Pos      int     `json:"pos"`
	W        int     `json:"w"`
	L        int     `json:"l"`
	RS       int     `json:"rs"`
	RA       int     `json:"ra"`
	Pct      int     `json:"pct"`
	GB       float64 `json:"gb"`
}

// Played returns the number of decided games.
func (s Standing) Played() int {
	return s.W + s.L
}

// RunDiff returns runs scored minus runs allowed.
func (s Standing) RunDiff() int {
	return s.RS - s.RA
}

// PctString renders the winning percentage for display.
func (s Standing) PctString() string {
	return FormatPct(s.Pct)
}

// FormatPct renders a thousandths value the way standings are printed:
// "1.000" for a perfect record and ".750" style otherwise.
func FormatPct(pct int) string {
	if pct >= 1000 {
		return "1.000"
	}
	if pct < 0 {
		pct = 0
	}
	return fmt.Sprintf(".%03d", pct)
}

// decided reports whether a game has both teams assigned and both scores entered.
func decided(g Game) bool {
	return g.Team1ID != 0 && g.Team2ID != 0 && g.Completed()
}

// HasUnresolvedTie reports whether any completed preliminary game is tied.
// ComputeStandings returns no rows while this holds.
func HasUnresolvedTie(games []Game) bool {
	for _, g := range games {
		if g.IsChampionship {
			continue
		}
		if g.Tied() {
			return true
		}
	}
	return false
}

// ComputeStandings ranks the teams by their preliminary results.
//
// It returns an empty slice when any completed game is tied. Championship
// games are ignored, as are games involving a team missing from teams.
// Teams tied on percentage are ordered by run differential, then by fewer
// games played. Teams still level keep their roster order.
func ComputeStandings(games []Game, teams []Team) []Standing {
	if HasUnresolvedTie(games) {
		return []Standing{}
	}

	idx := teamIndex(teams)
	rows := make([]Standing, len(teams))
	for i, t := range teams {
		rows[i] = Standing{TeamID: t.ID, TeamName: t.Name}
	}

	for _, g := range games {
		if g.IsChampionship || !decided(g) {
			continue
		}
		i1, ok1 := idx[g.Team1ID]
		i2, ok2 := idx[g.Team2ID]
		if !ok1 || !ok2 {
			continue
		}
		s1, s2 := ParseNumber(g.Score1), ParseNumber(g.Score2)

		rows[i1].RS += s1
		rows[i1].RA += s2
		rows[i2].RS += s2
		rows[i2].RA += s1
		if s1 > s2 {
			rows[i1].W++
			rows[i2].L++
		} else {
			rows[i2].W++
			rows[i1].L++
		}
	}

	for i := range rows {
		rows[i].Pct = thousandths(rows[i].W, rows[i].Played())
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return ranksAhead(rows[a], rows[b])
	})

	if len(rows) == 0 {
		return rows
	}

	leader := rows[0]
	for i := range rows {
		if i > 0 && rows[i].W == rows[i-1].W && rows[i].L == rows[i-1].L {
			rows[i].Pos = rows[i-1].Pos
		} else {
			rows[i].Pos = i + 1
		}
		if rows[i].Played() > 0 {
			rows[i].GB = float64((leader.W-rows[i].W)+(rows[i].L-leader.L)) / 2
		}
	}
	return rows
}

// ranksAhead orders two standings rows. Percentages are compared exactly by
// cross-multiplying so that rounding to thousandths never merges two records.
// A team without games counts as .000.
func ranksAhead(a, b Standing) bool {
	left, right := a.W*b.Played(), b.W*a.Played()
	switch {
	case a.Played() == 0 && b.Played() == 0:
		left, right = 0, 0
	case a.Played() == 0:
		left, right = 0, b.W
	case b.Played() == 0:
		left, right = a.W, 0
	}
	if left != right {
		return left > right
	}
	if a.RunDiff() != b.RunDiff() {
		return a.RunDiff() > b.RunDiff()
	}
	return a.Played() < b.Played()
}

func thousandths(w, played int) int {
	if played == 0 {
		return 0
	}
	return int(math.Floor(float64(w)*1000/float64(played) + 0.5))
}
