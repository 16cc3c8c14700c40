// Package repository provides data access layer for award module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/softball_scoreboard/internal/award/model"
	"github.com/festy23/softball_scoreboard/internal/database/dberr"
)

// Repository defines the interface for award data access operations.
type Repository interface {
	// List returns every award ordered by id.
	List(ctx context.Context) ([]model.Award, error)

	// Create inserts an award and fills its id.
	Create(ctx context.Context, award *model.Award) error

	// Update overwrites the award with award.ID.
	Update(ctx context.Context, award *model.Award) error

	// UpsertByTitle writes awards, replacing those with the same category
	// and title.
	UpsertByTitle(ctx context.Context, awards []model.Award) error

	// DeleteAll removes every award and returns how many were deleted.
	DeleteAll(ctx context.Context) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new award repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) List(ctx context.Context) ([]model.Award, error) {
	r.logger.Debugw("List called")

	awards := []model.Award{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&awards).Error; err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}

	r.logger.Debugw("List completed", "count", len(awards))
	return awards, nil
}

func (r *repository) Create(ctx context.Context, award *model.Award) error {
	r.logger.Debugw("Create called", "category", award.Category, "title", award.Title)

	if err := r.db.WithContext(ctx).Create(award).Error; err != nil {
		if dberr.IsDuplicate(err) {
			return model.ErrAwardExists
		}
		r.logger.Errorw("Create database error", "title", award.Title, "error", err)
		return err
	}

	r.logger.Debugw("Create completed", "award_id", award.ID)
	return nil
}

func (r *repository) Update(ctx context.Context, award *model.Award) error {
	r.logger.Debugw("Update called", "award_id", award.ID)

	result := r.db.WithContext(ctx).Model(&model.Award{}).
		Where("id = ?", award.ID).
		Updates(map[string]interface{}{
			"category":    award.Category,
			"title":       award.Title,
			"player_name": award.PlayerName,
			"team_name":   award.TeamName,
			"description": award.Description,
		})
	if result.Error != nil {
		if dberr.IsDuplicate(result.Error) {
			return model.ErrAwardExists
		}
		r.logger.Errorw("Update database error", "award_id", award.ID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrAwardNotFound
	}
	return nil
}

func (r *repository) UpsertByTitle(ctx context.Context, awards []model.Award) error {
	r.logger.Debugw("UpsertByTitle called", "count", len(awards))
	if len(awards) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "title"}},
		DoUpdates: clause.AssignmentColumns([]string{"player_name", "team_name", "description", "updated_at"}),
	}).Create(&awards).Error
	if err != nil {
		r.logger.Errorw("UpsertByTitle database error", "error", err)
		return err
	}
	return nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	r.logger.Debugw("DeleteAll called")

	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Award{})
	if result.Error != nil {
		r.logger.Errorw("DeleteAll database error", "error", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
