package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Sentinel marks a half-inning that was not played because the game ended early.
	Sentinel = "X"
	// RegulationInnings is the scheduled length of a game.
	RegulationInnings = 7
)

// ErrInvalidCell is returned when an inning edit addresses a cell outside the grid.
var ErrInvalidCell = errors.New("invalid inning cell")

// Innings is the inning-by-inning grid of a game. Column 0 is the visitor
// (team1) and column 1 the home team (team2).
type Innings [][2]string

// NewInnings returns a grid of count empty rows.
func NewInnings(count int) Innings {
	if count < 0 {
		count = 0
	}
	return make(Innings, count)
}

// Clone returns a copy of the grid that shares no memory with in.
func (in Innings) Clone() Innings {
	if in == nil {
		return nil
	}
	out := make(Innings, len(in))
	copy(out, in)
	return out
}

// HasData reports whether any cell has been filled in.
func (in Innings) HasData() bool {
	for _, row := range in {
		if row[0] != "" || row[1] != "" {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts cells written either as strings or as numbers, and
// null as an empty cell. Short rows are padded.
func (in *Innings) UnmarshalJSON(data []byte) error {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding innings: %w", err)
	}
	out := make(Innings, len(raw))
	for i, row := range raw {
		if len(row) > 2 {
			return fmt.Errorf("decoding innings: row %d has %d cells", i, len(row))
		}
		for j, cell := range row {
			v, err := decodeCell(cell)
			if err != nil {
				return fmt.Errorf("decoding innings: row %d: %w", i, err)
			}
			out[i][j] = v
		}
	}
	*in = out
	return nil
}

func decodeCell(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// NormalizeCell canonicalizes the sentinel to upper case.
func NormalizeCell(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), Sentinel) {
		return Sentinel
	}
	return value
}

// DeriveScore sums each column of the grid. The sentinel, empty cells and
// unparseable cells count as zero wherever they appear.
func DeriveScore(in Innings) (int, int) {
	var s1, s2 int
	for _, row := range in {
		s1 += ParseNumber(row[0])
		s2 += ParseNumber(row[1])
	}
	return s1, s2
}

// SetCell writes one inning cell and returns the updated game with its scores
// recomputed from the grid.
//
// Writing at inning == len(innings) grows the grid by one row. When a
// non-empty value lands in the last row, at or past regulation, and leaves
// the game tied, an empty extra inning is appended.
func SetCell(g Game, inning, team int, value string) (Game, error) {
	if team != 0 && team != 1 {
		return g, fmt.Errorf("%w: team index %d", ErrInvalidCell, team)
	}
	if inning < 0 || inning > len(g.Innings) {
		return g, fmt.Errorf("%w: inning index %d with %d innings", ErrInvalidCell, inning, len(g.Innings))
	}

	out := g.Clone()
	if inning == len(out.Innings) {
		out.Innings = append(out.Innings, [2]string{})
	}
	out.Innings[inning][team] = NormalizeCell(value)

	if inning == len(out.Innings)-1 && value != "" && inning >= RegulationInnings-1 {
		s1, s2 := DeriveScore(out.Innings)
		if s1 == s2 {
			out.Innings = append(out.Innings, [2]string{})
		}
	}

	s1, s2 := DeriveScore(out.Innings)
	out.Score1 = strconv.Itoa(s1)
	out.Score2 = strconv.Itoa(s2)
	return out, nil
}

// SwapTeams exchanges the visitor and home sides of a game. Nothing is
// recomputed: every paired value trades places.
func SwapTeams(g Game) Game {
	out := g.Clone()
	out.Team1ID, out.Team2ID = g.Team2ID, g.Team1ID
	out.Score1, out.Score2 = g.Score2, g.Score1
	out.Hits1, out.Hits2 = g.Hits2, g.Hits1
	out.Errors1, out.Errors2 = g.Errors2, g.Errors1
	for i, row := range out.Innings {
		out.Innings[i] = [2]string{row[1], row[0]}
	}
	return out
}

// EnsureInnings gives a game without a grid defaultCount empty innings.
// A non-positive defaultCount means RegulationInnings.
func EnsureInnings(g Game, defaultCount int) Game {
	if len(g.Innings) > 0 {
		return g
	}
	if defaultCount <= 0 {
		defaultCount = RegulationInnings
	}
	out := g.Clone()
	out.Innings = NewInnings(defaultCount)
	return out
}
