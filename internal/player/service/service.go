// Package service provides business logic layer for player module.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/softball_scoreboard/internal/engine"
	"github.com/festy23/softball_scoreboard/internal/importer"
	"github.com/festy23/softball_scoreboard/internal/player/model"
	"github.com/festy23/softball_scoreboard/internal/player/repository"
)

// RosterSync is told after roster changes so that it can refresh its
// in-memory copy.
type RosterSync interface {
	ReloadRoster(ctx context.Context) error
}

// Service defines the interface for player business logic operations.
type Service interface {
	// ImportText imports comma or tab separated roster lines into a team.
	ImportText(ctx context.Context, teamID int64, text string) (*model.ImportResponse, error)

	// ImportXLSX imports a roster workbook into a team.
	ImportXLSX(ctx context.Context, teamID int64, r io.Reader) (*model.ImportResponse, error)

	// UpdatePlayer changes the fields set in req.
	UpdatePlayer(ctx context.Context, id int64, req *model.UpdatePlayerRequest) (*engine.Player, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	sync   RosterSync
	logger *zap.SugaredLogger
}

// New creates a new player service instance. sync may be nil.
func New(repo repository.Repository, db *gorm.DB, sync RosterSync, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		sync:   sync,
		logger: logger,
	}
}

// ImportText parses and imports a pasted roster.
func (s *service) ImportText(ctx context.Context, teamID int64, text string) (*model.ImportResponse, error) {
	s.logger.Debugw("ImportText called", "team_id", teamID, "bytes", len(text))
	return s.importRoster(ctx, teamID, importer.ParseRoster(text))
}

// ImportXLSX parses and imports an uploaded workbook.
func (s *service) ImportXLSX(ctx context.Context, teamID int64, r io.Reader) (*model.ImportResponse, error) {
	s.logger.Debugw("ImportXLSX called", "team_id", teamID)

	roster, err := importer.ParseRosterXLSX(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnsupportedFormat, err)
	}
	return s.importRoster(ctx, teamID, roster)
}

func (s *service) importRoster(ctx context.Context, teamID int64, roster importer.Roster) (*model.ImportResponse, error) {
	if len(roster.Entries) == 0 {
		s.logger.Debugw("import produced no players", "team_id", teamID, "skipped", len(roster.Skipped))
		return nil, model.ErrEmptyRoster
	}

	rows := make([]model.Player, 0, len(roster.Entries))
	seen := make(map[int]int, len(roster.Entries))
	for _, e := range roster.Entries {
		p := model.Player{
			TeamID:       teamID,
			Number:       e.Number,
			Name:         e.Name,
			Role:         e.Role,
			PlaceOfBirth: e.PlaceOfBirth,
		}
		// The last line for a number wins, as it would on re-import.
		if i, ok := seen[e.Number]; ok {
			rows[i] = p
			continue
		}
		seen[e.Number] = len(rows)
		rows = append(rows, p)
	}

	var players []model.Player
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		exists, err := txRepo.TeamExists(ctx, teamID)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrTeamNotFound
		}

		if err := txRepo.UpsertByNumber(ctx, rows); err != nil {
			return err
		}

		players, err = txRepo.ListByTeam(ctx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("roster imported", "team_id", teamID, "imported", len(rows), "skipped", len(roster.Skipped))
	s.reload(ctx)

	skipped := roster.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	out := &model.ImportResponse{
		TeamID:   teamID,
		Imported: len(rows),
		Skipped:  skipped,
		Players:  make([]engine.Player, 0, len(players)),
	}
	for _, p := range players {
		out.Players = append(out.Players, p.ToEngine())
	}
	return out, nil
}

// UpdatePlayer applies a partial update.
func (s *service) UpdatePlayer(ctx context.Context, id int64, req *model.UpdatePlayerRequest) (*engine.Player, error) {
	s.logger.Debugw("UpdatePlayer called", "player_id", id)

	if req.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", model.ErrInvalidPlayer)
	}
	if req.Number != nil && *req.Number < 0 {
		return nil, fmt.Errorf("%w: number must not be negative", model.ErrInvalidPlayer)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrInvalidPlayer)
	}

	player, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Number != nil {
		player.Number = *req.Number
	}
	if req.Name != nil {
		player.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		player.Role = strings.TrimSpace(*req.Role)
	}
	if req.PlaceOfBirth != nil {
		player.PlaceOfBirth = strings.TrimSpace(*req.PlaceOfBirth)
	}

	if err := s.repo.Update(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Infow("UpdatePlayer completed", "player_id", id)
	s.reload(ctx)

	out := player.ToEngine()
	return &out, nil
}

func (s *service) reload(ctx context.Context) {
	if s.sync == nil {
		return
	}
	if err := s.sync.ReloadRoster(ctx); err != nil {
		s.logger.Warnw("roster reload failed", "error", err)
	}
}
