package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/festy23/softball_scoreboard/internal/engine"
	"github.com/festy23/softball_scoreboard/internal/game/model"
	"github.com/festy23/softball_scoreboard/internal/notify"
)

// change lists what a mutation touched besides the game row itself.
type change struct {
	game     bool
	batting  []int64
	pitching []int64
}

// StandingsPayload is the payload of a standings event. Rankable is false
// while a tied preliminary game blocks the table.
type StandingsPayload struct {
	Rankable  bool              `json:"rankable"`
	Standings []engine.Standing `json:"standings"`
}

// ChampionPayload is the payload of a champion event.
type ChampionPayload struct {
	Champion string `json:"champion"`
	TeamID   int64  `json:"team_id"`
}

// mutate applies fn to a copy of game id under the state lock, re-evaluates
// standings and the championship, then publishes and schedules a save.
func (t *Tournament) mutate(ctx context.Context, op string, id int64, fn func(g *engine.Game) (change, error)) (engine.Game, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return engine.Game{}, model.ErrClosed
	}
	if t.resetting {
		t.mu.Unlock()
		return engine.Game{}, model.ErrResetInProgress
	}
	i, ok := t.index[id]
	if !ok {
		t.mu.Unlock()
		return engine.Game{}, model.ErrGameNotFound
	}

	g := t.gameList[i].Clone()
	ch, err := fn(&g)
	if err != nil {
		t.mu.Unlock()
		return engine.Game{}, err
	}

	t.gameList[i] = g
	if ch.game {
		t.dirtyGames[id] = struct{}{}
	}
	for _, pid := range ch.batting {
		t.dirtyBatting[statKey{gameID: id, playerID: pid}] = struct{}{}
	}
	for _, pid := range ch.pitching {
		t.dirtyPitching[statKey{gameID: id, playerID: pid}] = struct{}{}
	}
	t.version++

	rest := t.reevaluateLocked()
	events := make([]notify.Event, 0, len(rest)+1)
	events = append(events, notify.NewEvent(notify.GameUpdated, t.version, t.gameList[i].Clone()).WithGame(id))
	events = append(events, rest...)
	out := t.gameList[i].Clone()
	t.updatePendingLocked()
	t.mu.Unlock()

	t.metrics.mutations.WithLabelValues(op).Inc()
	t.publish(ctx, events)
	t.scheduleSave(ctx)
	return out, nil
}

// reevaluateLocked recomputes standings and reconciles the championship game.
func (t *Tournament) reevaluateLocked() []notify.Event {
	standings := engine.ComputeStandings(engine.Preliminary(t.gameList), t.teamList)
	events := []notify.Event{notify.NewEvent(notify.StandingsUpdated, t.version, StandingsPayload{
		Rankable:  !engine.HasUnresolvedTie(t.gameList),
		Standings: standings,
	})}

	i, ok := t.championshipIndexLocked()
	if !ok {
		return events
	}
	res := engine.ResolveChampionship(standings, t.gameList[i], t.teamList, t.champion)
	if res.Reassigned {
		t.gameList[i] = res.Game
		t.dirtyGames[res.Game.ID] = struct{}{}
		events = append(events, notify.NewEvent(notify.GameUpdated, t.version, res.Game.Clone()).WithGame(res.Game.ID))
		t.logger.Infow("championship teams assigned",
			"game_id", res.Game.ID,
			"team1_id", res.Game.Team1ID,
			"team2_id", res.Game.Team2ID,
		)
	}

	switch {
	case res.Announce:
		t.champion = res.WinnerName
		t.championDirty = true
		events = append(events, notify.NewEvent(notify.ChampionDeclared, t.version, ChampionPayload{
			Champion: res.WinnerName,
			TeamID:   res.WinnerID,
		}).WithGame(res.Game.ID))
		t.logger.Infow("champion declared", "champion", res.WinnerName, "team_id", res.WinnerID)
	case !res.HasWinner() && t.champion != "":
		t.champion = ""
		t.championDirty = true
	}
	return events
}

// UpdateGame changes the provided fields of a game.
func (t *Tournament) UpdateGame(ctx context.Context, id int64, req *model.UpdateGameRequest) (engine.Game, error) {
	for _, v := range []*string{req.Score1, req.Score2, req.Hits1, req.Hits2, req.Errors1, req.Errors2} {
		if v != nil && !validCount(*v) {
			return engine.Game{}, fmt.Errorf("%w: %q is not a count", model.ErrInvalidField, *v)
		}
	}

	return t.mutate(ctx, "update", id, func(g *engine.Game) (change, error) {
		team1, team2 := g.Team1ID, g.Team2ID
		if req.Team1ID != nil {
			team1 = *req.Team1ID
		}
		if req.Team2ID != nil {
			team2 = *req.Team2ID
		}
		for _, tid := range []int64{team1, team2} {
			if tid == 0 {
				continue
			}
			if _, ok := t.teamLocked(tid); !ok {
				return change{}, fmt.Errorf("%w: unknown team %d", model.ErrInvalidField, tid)
			}
		}
		if team1 != 0 && team1 == team2 {
			return change{}, fmt.Errorf("%w: a team cannot play itself", model.ErrInvalidField)
		}
		g.Team1ID, g.Team2ID = team1, team2

		assign(&g.Score1, req.Score1)
		assign(&g.Score2, req.Score2)
		assign(&g.Hits1, req.Hits1)
		assign(&g.Hits2, req.Hits2)
		assign(&g.Errors1, req.Errors1)
		assign(&g.Errors2, req.Errors2)
		assign(&g.Day, req.Day)
		assign(&g.Time, req.Time)
		return change{game: true}, nil
	})
}

// SetCell writes one inning cell; scores are recomputed from the grid.
func (t *Tournament) SetCell(ctx context.Context, id int64, inning, team int, value string) (engine.Game, error) {
	value = strings.TrimSpace(value)
	if !validCell(value) {
		return engine.Game{}, fmt.Errorf("%w: %q is not a run count", model.ErrInvalidField, value)
	}

	return t.mutate(ctx, "set_cell", id, func(g *engine.Game) (change, error) {
		updated, err := engine.SetCell(engine.EnsureInnings(*g, t.opts.DefaultInnings), inning, team, value)
		if err != nil {
			return change{}, err
		}
		*g = updated
		return change{game: true}, nil
	})
}

// Swap exchanges the visitor and home sides of a game.
func (t *Tournament) Swap(ctx context.Context, id int64) (engine.Game, error) {
	return t.mutate(ctx, "swap", id, func(g *engine.Game) (change, error) {
		*g = engine.SwapTeams(*g)
		return change{game: true}, nil
	})
}

// UpsertBatting records one player's batting line for a game.
func (t *Tournament) UpsertBatting(ctx context.Context, gameID, playerID int64, stat engine.BattingStat) (engine.Game, error) {
	if err := validBatting(stat); err != nil {
		return engine.Game{}, err
	}
	stat.GameID, stat.PlayerID = gameID, playerID

	return t.mutate(ctx, "batting", gameID, func(g *engine.Game) (change, error) {
		if err := t.checkPlayerLocked(*g, playerID); err != nil {
			return change{}, err
		}
		g.BattingStats = putBatting(g.BattingStats, stat)
		return change{batting: []int64{playerID}}, nil
	})
}

// UpsertPitching records one player's pitching line for a game.
func (t *Tournament) UpsertPitching(ctx context.Context, gameID, playerID int64, stat engine.PitchingStat) (engine.Game, error) {
	if err := validPitching(stat); err != nil {
		return engine.Game{}, err
	}
	stat.GameID, stat.PlayerID = gameID, playerID

	return t.mutate(ctx, "pitching", gameID, func(g *engine.Game) (change, error) {
		if err := t.checkPlayerLocked(*g, playerID); err != nil {
			return change{}, err
		}
		g.PitchingStats = putPitching(g.PitchingStats, stat)
		return change{pitching: []int64{playerID}}, nil
	})
}

func (t *Tournament) checkPlayerLocked(g engine.Game, playerID int64) error {
	for _, team := range t.teamList {
		for _, p := range team.Players {
			if p.ID != playerID {
				continue
			}
			if team.ID != g.Team1ID && team.ID != g.Team2ID {
				return model.ErrPlayerNotInGame
			}
			return nil
		}
	}
	return model.ErrPlayerNotFound
}

func putBatting(rows []engine.BattingStat, stat engine.BattingStat) []engine.BattingStat {
	for i := range rows {
		if rows[i].PlayerID == stat.PlayerID {
			rows[i] = stat
			return rows
		}
	}
	return append(rows, stat)
}

func putPitching(rows []engine.PitchingStat, stat engine.PitchingStat) []engine.PitchingStat {
	for i := range rows {
		if rows[i].PlayerID == stat.PlayerID {
			rows[i] = stat
			return rows
		}
	}
	return append(rows, stat)
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// validCount accepts an empty value or a non-negative integer.
func validCount(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 0 && len(v) <= 8
}

func validCell(v string) bool {
	return strings.EqualFold(v, engine.Sentinel) || validCount(v)
}

func validBatting(s engine.BattingStat) error {
	for _, n := range []int{
		s.PlateAppearances, s.AtBats, s.Runs, s.Hits, s.Doubles, s.Triples, s.HomeRuns, s.RBI,
		s.Walks, s.HitByPitch, s.SacrificeHits, s.SacrificeFlies, s.StrikeOuts, s.StolenBases,
	} {
		if n < 0 {
			return fmt.Errorf("%w: batting values must not be negative", model.ErrInvalidField)
		}
	}
	return nil
}

func validPitching(s engine.PitchingStat) error {
	for _, n := range []int{
		s.Hits, s.Runs, s.EarnedRuns, s.Walks, s.StrikeOuts, s.HomeRuns, s.Wins, s.Losses, s.Saves,
	} {
		if n < 0 {
			return fmt.Errorf("%w: pitching values must not be negative", model.ErrInvalidField)
		}
	}
	if s.InningsPitched < 0 {
		return fmt.Errorf("%w: innings pitched must not be negative", model.ErrInvalidField)
	}
	outs := engine.InningsToOuts(s.InningsPitched)
	if diff := engine.OutsToInnings(outs) - s.InningsPitched; diff > 1e-6 || diff < -1e-6 {
		return fmt.Errorf("%w: innings pitched %v must end in .0, .1 or .2", model.ErrInvalidField, s.InningsPitched)
	}
	return nil
}
