// Package repository stores box score rows.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/softball_scoreboard/internal/boxscore/model"
	"github.com/festy23/softball_scoreboard/internal/engine"
)

// Repository defines the box score data access operations.
type Repository interface {
	// UpsertBatting writes a batting row, replacing the row for the same
	// player and game.
	UpsertBatting(ctx context.Context, stat engine.BattingStat) error

	// UpsertPitching writes a pitching row, replacing the row for the same
	// player and game.
	UpsertPitching(ctx context.Context, stat engine.PitchingStat) error

	// ListBatting returns every batting row ordered by game and player.
	ListBatting(ctx context.Context) ([]engine.BattingStat, error)

	// ListPitching returns every pitching row ordered by game and player.
	ListPitching(ctx context.Context) ([]engine.PitchingStat, error)

	// DeleteAll removes every batting and pitching row.
	DeleteAll(ctx context.Context) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new box score repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

var playerGame = []clause.Column{{Name: "player_id"}, {Name: "game_id"}}

func (r *repository) UpsertBatting(ctx context.Context, stat engine.BattingStat) error {
	r.logger.Debugw("UpsertBatting called", "player_id", stat.PlayerID, "game_id", stat.GameID)

	row := model.NewBattingStat(stat)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: playerGame, DoUpdates: clause.AssignmentColumns(model.BattingColumns)}).
		Create(&row).Error
	if err != nil {
		r.logger.Errorw("UpsertBatting database error", "player_id", stat.PlayerID, "game_id", stat.GameID, "error", err)
		return err
	}
	return nil
}

func (r *repository) UpsertPitching(ctx context.Context, stat engine.PitchingStat) error {
	r.logger.Debugw("UpsertPitching called", "player_id", stat.PlayerID, "game_id", stat.GameID)

	row := model.NewPitchingStat(stat)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: playerGame, DoUpdates: clause.AssignmentColumns(model.PitchingColumns)}).
		Create(&row).Error
	if err != nil {
		r.logger.Errorw("UpsertPitching database error", "player_id", stat.PlayerID, "game_id", stat.GameID, "error", err)
		return err
	}
	return nil
}

func (r *repository) ListBatting(ctx context.Context) ([]engine.BattingStat, error) {
	var rows []model.BattingStat
	if err := r.db.WithContext(ctx).Order("game_id ASC, player_id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("ListBatting database error", "error", err)
		return nil, err
	}

	out := make([]engine.BattingStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToEngine())
	}
	r.logger.Debugw("ListBatting completed", "count", len(out))
	return out, nil
}

func (r *repository) ListPitching(ctx context.Context) ([]engine.PitchingStat, error) {
	var rows []model.PitchingStat
	if err := r.db.WithContext(ctx).Order("game_id ASC, player_id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("ListPitching database error", "error", err)
		return nil, err
	}

	out := make([]engine.PitchingStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToEngine())
	}
	r.logger.Debugw("ListPitching completed", "count", len(out))
	return out, nil
}

func (r *repository) DeleteAll(ctx context.Context) error {
	r.logger.Infow("DeleteAll called")

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.BattingStat{}).Error; err != nil {
			r.logger.Errorw("DeleteAll batting database error", "error", err)
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.PitchingStat{}).Error; err != nil {
			r.logger.Errorw("DeleteAll pitching database error", "error", err)
			return err
		}
		return nil
	})
}
