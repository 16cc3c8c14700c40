// Package repository provides data access layer for game module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/softball_scoreboard/internal/engine"
	"github.com/festy23/softball_scoreboard/internal/game/model"
)

// Repository defines the interface for game data access operations.
type Repository interface {
	// List returns every game ordered by id, without box score rows.
	List(ctx context.Context) ([]engine.Game, error)

	// Save inserts the game or overwrites every column of the stored row.
	Save(ctx context.Context, game engine.Game) error

	// GetSetting reads a tournament setting. ok is false when it is unset.
	GetSetting(ctx context.Context, key string) (value string, ok bool, err error)

	// SetSetting writes a tournament setting.
	SetSetting(ctx context.Context, key, value string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new game repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// List returns all games.
func (r *repository) List(ctx context.Context) ([]engine.Game, error) {
	r.logger.Debugw("List called")

	var rows []model.Game
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}

	games := make([]engine.Game, 0, len(rows))
	for _, row := range rows {
		games = append(games, row.ToEngine())
	}

	r.logger.Debugw("List completed", "count", len(games))
	return games, nil
}

// Save upserts the game row by id.
func (r *repository) Save(ctx context.Context, game engine.Game) error {
	r.logger.Debugw("Save called", "game_id", game.ID)

	row := model.NewGame(game)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(model.GameColumns),
		}).
		Create(&row).Error
	if err != nil {
		r.logger.Errorw("Save database error", "game_id", game.ID, "error", err)
		return err
	}

	return nil
}

// GetSetting reads one setting.
func (r *repository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		r.logger.Errorw("GetSetting database error", "key", key, "error", err)
		return "", false, err
	}
	return s.Value, true, nil
}

// SetSetting upserts one setting.
func (r *repository) SetSetting(ctx context.Context, key, value string) error {
	r.logger.Debugw("SetSetting called", "key", key)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model.Setting{Key: key, Value: value}).Error
	if err != nil {
		r.logger.Errorw("SetSetting database error", "key", key, "error", err)
		return err
	}
	return nil
}
