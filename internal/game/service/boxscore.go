package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/festy23/softball_scoreboard/internal/engine"
	"github.com/festy23/softball_scoreboard/internal/game/model"
	"github.com/festy23/softball_scoreboard/internal/importer"
)

// ImportBoxScore applies a pasted box score to a game. The visitor side maps
// to team1 and the local side to team2; rows are matched to players by
// uniform number. Inning lines replace the grid and the scores follow from
// it, while R-H-E lines override score, hits and errors.
func (t *Tournament) ImportBoxScore(ctx context.Context, id int64, text string) (*model.ImportBoxScoreResponse, error) {
	bs, err := importer.ParseBoxScore(text)
	if err != nil {
		return nil, err
	}
	if bs.GameID != 0 && bs.GameID != id {
		return nil, fmt.Errorf("%w: text is for game %d", model.ErrGameIDMismatch, bs.GameID)
	}

	resp := &model.ImportBoxScoreResponse{Unmatched: []string{}}
	game, err := t.mutate(ctx, "import", id, func(g *engine.Game) (change, error) {
		if g.Team1ID == 0 || g.Team2ID == 0 {
			return change{}, model.ErrTeamsNotAssigned
		}
		ch := change{game: true}

		if len(bs.VisitorInnings) > 0 || len(bs.LocalInnings) > 0 {
			grid := bs.Innings()
			for i, row := range grid {
				for side, v := range row {
					if !validCell(v) {
						return change{}, fmt.Errorf("%w: inning %d cell %d: %q", model.ErrInvalidField, i+1, side+1, v)
					}
				}
			}
			for len(grid) < t.opts.DefaultInnings {
				grid = append(grid, [2]string{})
			}
			g.Innings = grid
			s1, s2 := engine.DeriveScore(grid)
			g.Score1, g.Score2 = strconv.Itoa(s1), strconv.Itoa(s2)
		}
		for _, rhe := range []*importer.RHE{bs.VisitorRHE, bs.LocalRHE} {
			if rhe != nil && (rhe.Runs < 0 || rhe.Hits < 0 || rhe.Errors < 0) {
				return change{}, fmt.Errorf("%w: R-H-E values must not be negative", model.ErrInvalidField)
			}
		}
		applyRHE(&g.Score1, &g.Hits1, &g.Errors1, bs.VisitorRHE)
		applyRHE(&g.Score2, &g.Hits2, &g.Errors2, bs.LocalRHE)

		sides := []struct {
			label    string
			roster   map[int]int64
			batting  []importer.BatterLine
			pitching []importer.PitcherLine
		}{
			{"visitor", t.numbersLocked(g.Team1ID), bs.VisitorBatting, bs.VisitorPitching},
			{"local", t.numbersLocked(g.Team2ID), bs.LocalBatting, bs.LocalPitching},
		}
		for _, side := range sides {
			for _, line := range side.batting {
				pid, ok := side.roster[line.Number]
				if !ok {
					resp.Unmatched = append(resp.Unmatched, unmatched(side.label, "batting", line.Number, line.Name))
					continue
				}
				stat := line.Stat
				if err := validBatting(stat); err != nil {
					return change{}, fmt.Errorf("%s batting #%d: %w", side.label, line.Number, err)
				}
				stat.GameID, stat.PlayerID = g.ID, pid
				g.BattingStats = putBatting(g.BattingStats, stat)
				ch.batting = append(ch.batting, pid)
			}
			for _, line := range side.pitching {
				pid, ok := side.roster[line.Number]
				if !ok {
					resp.Unmatched = append(resp.Unmatched, unmatched(side.label, "pitching", line.Number, line.Name))
					continue
				}
				stat := line.Stat
				if err := validPitching(stat); err != nil {
					return change{}, fmt.Errorf("%s pitching #%d: %w", side.label, line.Number, err)
				}
				stat.GameID, stat.PlayerID = g.ID, pid
				g.PitchingStats = putPitching(g.PitchingStats, stat)
				ch.pitching = append(ch.pitching, pid)
			}
		}
		resp.Batting = len(ch.batting)
		resp.Pitching = len(ch.pitching)
		return ch, nil
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Unmatched) > 0 {
		t.logger.Warnw("box score rows without a roster match", "game_id", id, "rows", resp.Unmatched)
	}
	resp.Game = game
	return resp, nil
}

// numbersLocked maps uniform numbers to player ids for one team.
func (t *Tournament) numbersLocked(teamID int64) map[int]int64 {
	out := map[int]int64{}
	team, ok := t.teamLocked(teamID)
	if !ok {
		return out
	}
	for _, p := range team.Players {
		out[p.Number] = p.ID
	}
	return out
}

func applyRHE(score, hits, errs *string, rhe *importer.RHE) {
	if rhe == nil {
		return
	}
	*score = strconv.Itoa(rhe.Runs)
	*hits = strconv.Itoa(rhe.Hits)
	*errs = strconv.Itoa(rhe.Errors)
}

func unmatched(side, section string, number int, name string) string {
	return fmt.Sprintf("%s %s #%d %s", side, section, number, name)
}
