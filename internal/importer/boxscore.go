package importer

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/festy23/softball_scoreboard/internal/engine"
)

// ErrMalformedBoxScore is wrapped by every box score parse error.
var ErrMalformedBoxScore = errors.New("malformed box score")

const (
	battingColumns  = 14 // PA AB R H 2B 3B HR RBI BB HBP SH SF SO SB
	pitchingColumns = 10 // IP H R ER BB SO HR W L S
)

// Box score sections.
const (
	SectionVisitorBatting  = "VISITOR_BATTING"
	SectionLocalBatting    = "LOCAL_BATTING"
	SectionVisitorPitching = "VISITOR_PITCHING"
	SectionLocalPitching   = "LOCAL_PITCHING"
)

// RHE is a line score total: runs, hits and errors.
type RHE struct {
	Runs   int
	Hits   int
	Errors int
}

// BatterLine is a batting row identified by uniform number.
type BatterLine struct {
	Number int
	Name   string
	Stat   engine.BattingStat
}

// PitcherLine is a pitching row identified by uniform number.
type PitcherLine struct {
	Number int
	Name   string
	Stat   engine.PitchingStat
}

// BoxScore is a parsed box score. Fields absent from the text stay zero.
type BoxScore struct {
	GameID          int64
	Visitor         string
	Local           string
	VisitorInnings  []string
	LocalInnings    []string
	VisitorRHE      *RHE
	LocalRHE        *RHE
	VisitorBatting  []BatterLine
	LocalBatting    []BatterLine
	VisitorPitching []PitcherLine
	LocalPitching   []PitcherLine
}

// Innings zips the two inning lists into a grid. "-" is read as an
// unplayed half-inning.
func (b BoxScore) Innings() engine.Innings {
	n := len(b.VisitorInnings)
	if len(b.LocalInnings) > n {
		n = len(b.LocalInnings)
	}
	out := engine.NewInnings(n)
	for i := 0; i < n; i++ {
		if i < len(b.VisitorInnings) {
			out[i][0] = inningCell(b.VisitorInnings[i])
		}
		if i < len(b.LocalInnings) {
			out[i][1] = inningCell(b.LocalInnings[i])
		}
	}
	return out
}

func inningCell(s string) string {
	if s == "-" {
		return ""
	}
	return engine.NormalizeCell(s)
}

// ParseBoxScore reads the line-oriented box score format:
//
//	GAME_ID: 3
//	VISITOR: Tigres
//	LOCAL: Leones
//	VISITOR_INNINGS: 1,0,2,0,0,1,0
//	LOCAL_INNINGS: 0,0,1,0,0,0,X
//	VISITOR_RHE: 4,8,1
//	LOCAL_RHE: 1,5,2
//	SECTION: VISITOR_BATTING
//	7, PEREZ, ANA, 4,4,1,2,1,0,0,1,0,0,0,0,1,0
//
// Names may contain commas; the stat columns are counted from the right.
// Rows that do not start with a uniform number are treated as headers.
// Lines starting with "//" are comments.
func ParseBoxScore(text string) (BoxScore, error) {
	var (
		out     BoxScore
		section string
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		key, value, isField := splitField(line)
		if isField {
			if err := out.setField(key, value, &section); err != nil {
				return BoxScore{}, fmt.Errorf("%w: line %d: %v", ErrMalformedBoxScore, lineNo, err)
			}
			continue
		}

		if err := out.addRow(section, line); err != nil {
			return BoxScore{}, fmt.Errorf("%w: line %d: %v", ErrMalformedBoxScore, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return BoxScore{}, fmt.Errorf("reading box score: %w", err)
	}
	return out, nil
}

var fieldKeys = map[string]bool{
	"GAME_ID":         true,
	"VISITOR":         true,
	"LOCAL":           true,
	"VISITOR_INNINGS": true,
	"LOCAL_INNINGS":   true,
	"VISITOR_RHE":     true,
	"LOCAL_RHE":       true,
	"SECTION":         true,
}

func splitField(line string) (string, string, bool) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	key = strings.ToUpper(strings.TrimSpace(key))
	if !fieldKeys[key] {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

func (b *BoxScore) setField(key, value string, section *string) error {
	switch key {
	case "GAME_ID":
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("game id %q", value)
		}
		b.GameID = id
	case "VISITOR":
		b.Visitor = value
	case "LOCAL":
		b.Local = value
	case "VISITOR_INNINGS":
		b.VisitorInnings = splitList(value)
	case "LOCAL_INNINGS":
		b.LocalInnings = splitList(value)
	case "VISITOR_RHE", "LOCAL_RHE":
		rhe, err := parseRHE(value)
		if err != nil {
			return err
		}
		if key == "VISITOR_RHE" {
			b.VisitorRHE = &rhe
		} else {
			b.LocalRHE = &rhe
		}
	case "SECTION":
		s := strings.ToUpper(value)
		switch s {
		case SectionVisitorBatting, SectionLocalBatting, SectionVisitorPitching, SectionLocalPitching:
			*section = s
		default:
			return fmt.Errorf("unknown section %q", value)
		}
	}
	return nil
}

func (b *BoxScore) addRow(section, line string) error {
	parts := splitList(line)
	number, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}

	switch section {
	case SectionVisitorBatting, SectionLocalBatting:
		row, err := parseBatter(number, parts)
		if err != nil {
			return err
		}
		if section == SectionVisitorBatting {
			b.VisitorBatting = append(b.VisitorBatting, row)
		} else {
			b.LocalBatting = append(b.LocalBatting, row)
		}
	case SectionVisitorPitching, SectionLocalPitching:
		row, err := parsePitcher(number, parts)
		if err != nil {
			return err
		}
		if section == SectionVisitorPitching {
			b.VisitorPitching = append(b.VisitorPitching, row)
		} else {
			b.LocalPitching = append(b.LocalPitching, row)
		}
	default:
		return fmt.Errorf("stat row outside of a section")
	}
	return nil
}

func parseBatter(number int, parts []string) (BatterLine, error) {
	if len(parts) < battingColumns+2 {
		return BatterLine{}, fmt.Errorf("batting row has %d columns, want %d", len(parts), battingColumns+2)
	}
	split := len(parts) - battingColumns
	v, err := atoiAll(parts[split:])
	if err != nil {
		return BatterLine{}, err
	}
	return BatterLine{
		Number: number,
		Name:   strings.Join(parts[1:split], ", "),
		Stat: engine.BattingStat{
			PlateAppearances: v[0],
			AtBats:           v[1],
			Runs:             v[2],
			Hits:             v[3],
			Doubles:          v[4],
			Triples:          v[5],
			HomeRuns:         v[6],
			RBI:              v[7],
			Walks:            v[8],
			HitByPitch:       v[9],
			SacrificeHits:    v[10],
			SacrificeFlies:   v[11],
			StrikeOuts:       v[12],
			StolenBases:      v[13],
		},
	}, nil
}

func parsePitcher(number int, parts []string) (PitcherLine, error) {
	if len(parts) < pitchingColumns+2 {
		return PitcherLine{}, fmt.Errorf("pitching row has %d columns, want %d", len(parts), pitchingColumns+2)
	}
	split := len(parts) - pitchingColumns
	ip, err := strconv.ParseFloat(parts[split], 64)
	if err != nil {
		return PitcherLine{}, fmt.Errorf("innings pitched %q", parts[split])
	}
	v, err := atoiAll(parts[split+1:])
	if err != nil {
		return PitcherLine{}, err
	}
	return PitcherLine{
		Number: number,
		Name:   strings.Join(parts[1:split], ", "),
		Stat: engine.PitchingStat{
			InningsPitched: ip,
			Hits:           v[0],
			Runs:           v[1],
			EarnedRuns:     v[2],
			Walks:          v[3],
			StrikeOuts:     v[4],
			HomeRuns:       v[5],
			Wins:           v[6],
			Losses:         v[7],
			Saves:          v[8],
		},
	}, nil
}

func parseRHE(value string) (RHE, error) {
	parts := splitList(value)
	if len(parts) != 3 {
		return RHE{}, fmt.Errorf("R,H,E needs 3 values, got %d", len(parts))
	}
	v, err := atoiAll(parts)
	if err != nil {
		return RHE{}, err
	}
	return RHE{Runs: v[0], Hits: v[1], Errors: v[2]}, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func atoiAll(parts []string) ([]int, error) {
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", p)
		}
		out[i] = n
	}
	return out, nil
}
