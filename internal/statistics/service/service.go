// Package service derives standings, leaderboards and their renderings
// from tournament snapshots.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/engine"
	gameModel "github.com/festy23/softball_scoreboard/internal/game/model"
	"github.com/festy23/softball_scoreboard/internal/statistics/model"
	"github.com/festy23/softball_scoreboard/internal/statistics/repository"
)

// Service defines the statistics operations.
type Service interface {
	// Standings returns the preliminary standings.
	Standings(ctx context.Context) (*model.StandingsResponse, error)

	// Leaders returns the batting and pitching leaderboards. A non-positive
	// limit uses the configured default.
	Leaders(ctx context.Context, limit int) (*model.LeadersResponse, error)

	// ExportXLSX renders standings and full leaderboards as a workbook.
	ExportXLSX(ctx context.Context) ([]byte, error)

	// StandingsChart renders winning percentages as a PNG bar chart.
	StandingsChart(ctx context.Context) ([]byte, error)
}

// Source supplies consistent tournament snapshots.
type Source interface {
	Snapshot() gameModel.Snapshot
}

type service struct {
	source Source
	cache  repository.Repository
	limit  int
	epoch  string
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(source Source, cache repository.Repository, limit int, logger *zap.SugaredLogger) Service {
	if limit <= 0 {
		limit = engine.DefaultLeaderboardLimit
	}
	return &service{
		source: source,
		cache:  cache,
		limit:  limit,
		// Versions restart with the process, so keys carry a per-process epoch.
		epoch:  uuid.NewString()[:8],
		logger: logger,
	}
}

func (s *service) key(kind string, version uint64) string {
	return fmt.Sprintf("scoreboard:stats:%s:%s:v%d", s.epoch, kind, version)
}

// cached returns the view stored under key, building and storing it on a
// miss. Cache failures only cost a rebuild.
func (s *service) cached(ctx context.Context, key string, build func() ([]byte, error)) ([]byte, error) {
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warnw("statistics cache read failed", "key", key, "error", err)
	}
	if ok {
		return value, nil
	}

	value, err = build()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warnw("statistics cache write failed", "key", key, "error", err)
	}
	return value, nil
}

func standings(snap gameModel.Snapshot) model.StandingsResponse {
	preliminary := engine.Preliminary(snap.Games)
	rows := engine.ComputeStandings(preliminary, snap.Teams)
	out := model.StandingsResponse{
		Version:   snap.Version,
		Rankable:  !engine.HasUnresolvedTie(preliminary),
		Standings: make([]model.StandingRow, len(rows)),
		Champion:  snap.Champion,
	}
	for i, r := range rows {
		out.Standings[i] = model.StandingRow{Standing: r, PctText: r.PctString()}
	}
	return out
}

// leaders ranks players over the preliminary games only.
func leaders(snap gameModel.Snapshot, limit int) model.LeadersResponse {
	preliminary := engine.Preliminary(snap.Games)
	totals := engine.AggregateStats(preliminary, snap.Teams)
	teamGames := engine.TeamGamesPlayed(preliminary, snap.Teams)
	return model.LeadersResponse{
		Version:  snap.Version,
		Batting:  engine.RankBatting(totals, teamGames, limit),
		Pitching: engine.RankPitching(totals, teamGames, limit),
	}
}

func (s *service) Standings(ctx context.Context) (*model.StandingsResponse, error) {
	snap := s.source.Snapshot()

	data, err := s.cached(ctx, s.key("standings", snap.Version), func() ([]byte, error) {
		return json.Marshal(standings(snap))
	})
	if err != nil {
		s.logger.Errorw("Standings failed", "error", err)
		return nil, err
	}

	var resp model.StandingsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding cached standings: %w", err)
	}
	return &resp, nil
}

func (s *service) Leaders(ctx context.Context, limit int) (*model.LeadersResponse, error) {
	if limit <= 0 {
		limit = s.limit
	}
	snap := s.source.Snapshot()

	data, err := s.cached(ctx, s.key(fmt.Sprintf("leaders:%d", limit), snap.Version), func() ([]byte, error) {
		return json.Marshal(leaders(snap, limit))
	})
	if err != nil {
		s.logger.Errorw("Leaders failed", "error", err)
		return nil, err
	}

	var resp model.LeadersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding cached leaders: %w", err)
	}
	return &resp, nil
}

func (s *service) ExportXLSX(ctx context.Context) ([]byte, error) {
	snap := s.source.Snapshot()
	data, err := s.cached(ctx, s.key("xlsx", snap.Version), func() ([]byte, error) {
		return renderWorkbook(standings(snap), leaders(snap, playerCount(snap)))
	})
	if err != nil {
		s.logger.Errorw("ExportXLSX failed", "error", err)
		return nil, err
	}
	return data, nil
}

func (s *service) StandingsChart(ctx context.Context) ([]byte, error) {
	snap := s.source.Snapshot()
	data, err := s.cached(ctx, s.key("chart", snap.Version), func() ([]byte, error) {
		return renderStandingsChart(standings(snap))
	})
	if err != nil {
		s.logger.Errorw("StandingsChart failed", "error", err)
		return nil, err
	}
	return data, nil
}

// playerCount sizes the exported leaderboards so every qualified player fits.
func playerCount(snap gameModel.Snapshot) int {
	n := 0
	for _, t := range snap.Teams {
		n += len(t.Players)
	}
	if n == 0 {
		return 1
	}
	return n
}
