// Package repository provides data access layer for player module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/softball_scoreboard/internal/database/dberr"
	"github.com/festy23/softball_scoreboard/internal/player/model"
)

// Repository defines the interface for player data access operations.
type Repository interface {
	// GetByID finds a player by id.
	GetByID(ctx context.Context, id int64) (*model.Player, error)

	// ListByTeam returns a team's players ordered by uniform number.
	ListByTeam(ctx context.Context, teamID int64) ([]model.Player, error)

	// TeamExists reports whether a team with the given id exists.
	TeamExists(ctx context.Context, teamID int64) (bool, error)

	// UpsertByNumber inserts players, replacing name, role and place of
	// birth of any player already holding the same number on the team.
	UpsertByNumber(ctx context.Context, players []model.Player) error

	// Update saves every field of an existing player.
	Update(ctx context.Context, player *model.Player) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new player repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds a player by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	r.logger.Debugw("GetByID called", "player_id", id)

	var player model.Player
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("GetByID player not found", "player_id", id)
			return nil, model.ErrPlayerNotFound
		}
		r.logger.Errorw("GetByID database error", "player_id", id, "error", err)
		return nil, err
	}

	return &player, nil
}

// ListByTeam returns a team's players.
func (r *repository) ListByTeam(ctx context.Context, teamID int64) ([]model.Player, error) {
	r.logger.Debugw("ListByTeam called", "team_id", teamID)

	players := []model.Player{}
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("number ASC, id ASC").
		Find(&players).Error
	if err != nil {
		r.logger.Errorw("ListByTeam database error", "team_id", teamID, "error", err)
		return nil, err
	}

	r.logger.Debugw("ListByTeam completed", "team_id", teamID, "count", len(players))
	return players, nil
}

// TeamExists checks the teams table.
func (r *repository) TeamExists(ctx context.Context, teamID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("teams").Where("id = ?", teamID).Count(&count).Error
	if err != nil {
		r.logger.Errorw("TeamExists database error", "team_id", teamID, "error", err)
		return false, err
	}
	return count > 0, nil
}

// UpsertByNumber uses INSERT ... ON CONFLICT (team_id, number) DO UPDATE.
func (r *repository) UpsertByNumber(ctx context.Context, players []model.Player) error {
	if len(players) == 0 {
		return nil
	}
	r.logger.Infow("UpsertByNumber called", "count", len(players))

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "number"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "role", "place_of_birth", "updated_at"}),
		}).
		Create(&players).Error
	if err != nil {
		r.logger.Errorw("UpsertByNumber database error", "count", len(players), "error", err)
		return err
	}

	return nil
}

// Update saves a player.
func (r *repository) Update(ctx context.Context, player *model.Player) error {
	r.logger.Infow("Update called", "player_id", player.ID)

	result := r.db.WithContext(ctx).
		Model(&model.Player{}).
		Where("id = ?", player.ID).
		Updates(map[string]interface{}{
			"number":         player.Number,
			"name":           player.Name,
			"role":           player.Role,
			"place_of_birth": player.PlaceOfBirth,
		})
	if result.Error != nil {
		if dberr.IsDuplicate(result.Error) {
			return model.ErrDuplicateNumber
		}
		r.logger.Errorw("Update database error", "player_id", player.ID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Debugw("Update player not found", "player_id", player.ID)
		return model.ErrPlayerNotFound
	}

	return nil
}
