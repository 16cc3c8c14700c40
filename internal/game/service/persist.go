package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	boxRepository "github.com/festy23/softball_scoreboard/internal/boxscore/repository"
	"github.com/festy23/softball_scoreboard/internal/engine"
	"github.com/festy23/softball_scoreboard/internal/game/model"
	"github.com/festy23/softball_scoreboard/internal/game/repository"
	"github.com/festy23/softball_scoreboard/internal/notify"
	"github.com/festy23/softball_scoreboard/pkg/retry"
)

// SaveFailure is the payload of a save_failed event.
type SaveFailure struct {
	Unit  string `json:"unit"`
	Error string `json:"error"`
}

// scheduleSave arms the debounce timer, or flushes right away when
// debouncing is disabled.
func (t *Tournament) scheduleSave(ctx context.Context) {
	if t.opts.SaveDebounce <= 0 {
		// Failures are logged, counted and published by Flush.
		_, _ = t.Flush(ctx)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.opts.SaveDebounce, t.flushInBackground)
		return
	}
	t.timer.Reset(t.opts.SaveDebounce)
}

func (t *Tournament) flushInBackground() {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundFlushTimeout)
	defer cancel()
	_, _ = t.Flush(ctx)
}

type pending struct {
	games         []engine.Game
	batting       []engine.BattingStat
	pitching      []engine.PitchingStat
	champion      string
	championDirty bool
}

// takePendingLocked copies every dirty unit and clears the dirty sets.
func (t *Tournament) takePendingLocked() pending {
	var p pending
	for id := range t.dirtyGames {
		if i, ok := t.index[id]; ok {
			p.games = append(p.games, t.gameList[i].Clone())
		}
	}
	sort.Slice(p.games, func(a, b int) bool { return p.games[a].ID < p.games[b].ID })

	for key := range t.dirtyBatting {
		if s, ok := t.battingLocked(key); ok {
			p.batting = append(p.batting, s)
		}
	}
	for key := range t.dirtyPitching {
		if s, ok := t.pitchingLocked(key); ok {
			p.pitching = append(p.pitching, s)
		}
	}
	p.champion, p.championDirty = t.champion, t.championDirty

	t.dirtyGames = map[int64]struct{}{}
	t.dirtyBatting = map[statKey]struct{}{}
	t.dirtyPitching = map[statKey]struct{}{}
	t.championDirty = false
	return p
}

func (t *Tournament) battingLocked(key statKey) (engine.BattingStat, bool) {
	i, ok := t.index[key.gameID]
	if !ok {
		return engine.BattingStat{}, false
	}
	for _, s := range t.gameList[i].BattingStats {
		if s.PlayerID == key.playerID {
			return s, true
		}
	}
	return engine.BattingStat{}, false
}

func (t *Tournament) pitchingLocked(key statKey) (engine.PitchingStat, bool) {
	i, ok := t.index[key.gameID]
	if !ok {
		return engine.PitchingStat{}, false
	}
	for _, s := range t.gameList[i].PitchingStats {
		if s.PlayerID == key.playerID {
			return s, true
		}
	}
	return engine.PitchingStat{}, false
}

// Flush persists every pending change. Units that still fail after retrying
// are marked pending again; the in-memory state is never rolled back.
func (t *Tournament) Flush(ctx context.Context) (int, error) {
	t.flushMu.Lock()
	defer t.flushMu.Unlock()

	t.mu.Lock()
	p := t.takePendingLocked()
	t.mu.Unlock()

	var (
		saved  int
		errs   []error
		failed []notify.Event
	)
	fail := func(kind, unit string, err error, remark func()) {
		t.logger.Errorw("save failed", "unit", unit, "error", err)
		t.metrics.saves.WithLabelValues(kind, "error").Inc()
		errs = append(errs, fmt.Errorf("saving %s: %w", unit, err))
		t.mu.Lock()
		remark()
		failed = append(failed, notify.NewEvent(notify.SaveFailed, t.version, SaveFailure{Unit: unit, Error: err.Error()}))
		t.mu.Unlock()
	}
	ok := func(kind string) {
		t.metrics.saves.WithLabelValues(kind, "ok").Inc()
		saved++
	}

	for _, g := range p.games {
		g := g
		if err := retry.Do(ctx, t.opts.Retry, func() error { return t.games.Save(ctx, g) }); err != nil {
			fail("game", fmt.Sprintf("game %d", g.ID), err, func() { t.dirtyGames[g.ID] = struct{}{} })
			continue
		}
		ok("game")
	}
	for _, s := range p.batting {
		s := s
		if err := retry.Do(ctx, t.opts.Retry, func() error { return t.stats.UpsertBatting(ctx, s) }); err != nil {
			unit := fmt.Sprintf("batting game %d player %d", s.GameID, s.PlayerID)
			fail("batting", unit, err, func() { t.dirtyBatting[statKey{gameID: s.GameID, playerID: s.PlayerID}] = struct{}{} })
			continue
		}
		ok("batting")
	}
	for _, s := range p.pitching {
		s := s
		if err := retry.Do(ctx, t.opts.Retry, func() error { return t.stats.UpsertPitching(ctx, s) }); err != nil {
			unit := fmt.Sprintf("pitching game %d player %d", s.GameID, s.PlayerID)
			fail("pitching", unit, err, func() { t.dirtyPitching[statKey{gameID: s.GameID, playerID: s.PlayerID}] = struct{}{} })
			continue
		}
		ok("pitching")
	}
	if p.championDirty {
		err := retry.Do(ctx, t.opts.Retry, func() error {
			return t.games.SetSetting(ctx, model.SettingChampion, p.champion)
		})
		if err != nil {
			fail("champion", "champion", err, func() { t.championDirty = true })
		} else {
			ok("champion")
		}
	}

	t.mu.Lock()
	t.updatePendingLocked()
	t.mu.Unlock()

	if saved > 0 || len(errs) > 0 {
		t.logger.Infow("tournament flushed", "saved", saved, "failed", len(errs))
	}
	t.publish(ctx, failed)
	return saved, errors.Join(errs...)
}

// Close stops the debounce timer, rejects further mutations and writes
// whatever is still pending.
func (t *Tournament) Close(ctx context.Context) error {
	t.mu.Lock()
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.mu.Unlock()

	_, err := t.Flush(ctx)
	return err
}

// Reset clears every result and box score row, unassigns the championship
// game and forgets the champion. Preliminary pairings, days and times stay.
// It is written synchronously in one transaction before memory changes.
func (t *Tournament) Reset(ctx context.Context) error {
	t.flushMu.Lock()
	defer t.flushMu.Unlock()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return model.ErrClosed
	}
	cleared := make([]engine.Game, len(t.gameList))
	for i, g := range t.gameList {
		c := engine.Game{
			ID:             g.ID,
			Team1ID:        g.Team1ID,
			Team2ID:        g.Team2ID,
			IsChampionship: g.IsChampionship,
			Day:            g.Day,
			Time:           g.Time,
			Innings:        engine.NewInnings(t.opts.DefaultInnings),
		}
		if c.IsChampionship {
			c.Team1ID, c.Team2ID = 0, 0
		}
		cleared[i] = c
	}
	t.resetting = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.resetting = false
		t.mu.Unlock()
	}()

	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := boxRepository.New(tx, t.logger).DeleteAll(ctx); err != nil {
			return err
		}
		games := repository.New(tx, t.logger)
		for _, g := range cleared {
			if err := games.Save(ctx, g); err != nil {
				return err
			}
		}
		return games.SetSetting(ctx, model.SettingChampion, "")
	})
	if err != nil {
		t.logger.Errorw("tournament reset failed", "error", err)
		return fmt.Errorf("resetting tournament: %w", err)
	}

	t.mu.Lock()
	t.gameList = cleared
	t.champion = ""
	t.dirtyGames = map[int64]struct{}{}
	t.dirtyBatting = map[statKey]struct{}{}
	t.dirtyPitching = map[statKey]struct{}{}
	t.championDirty = false
	t.version++
	events := []notify.Event{
		notify.NewEvent(notify.TournamentReset, t.version, nil),
		notify.NewEvent(notify.StandingsUpdated, t.version, StandingsPayload{
			Rankable:  true,
			Standings: engine.ComputeStandings(engine.Preliminary(cleared), t.teamList),
		}),
	}
	t.updatePendingLocked()
	t.mu.Unlock()

	t.metrics.mutations.WithLabelValues("reset").Inc()
	t.logger.Infow("tournament reset", "games", len(cleared))
	t.publish(ctx, events)
	return nil
}
