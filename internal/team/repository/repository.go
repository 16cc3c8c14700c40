// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/softball_scoreboard/internal/database/dberr"
	teamModel "github.com/festy23/softball_scoreboard/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create creates a new team with an empty roster.
	Create(ctx context.Context, name string) (*teamModel.Team, error)

	// GetByID finds a team by id with its players ordered by uniform number.
	GetByID(ctx context.Context, id int64) (*teamModel.Team, error)

	// List returns every team with its players, ordered by id.
	List(ctx context.Context) ([]teamModel.Team, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func playersByNumber(db *gorm.DB) *gorm.DB {
	return db.Order("number ASC, id ASC")
}

// Create creates a new team.
func (r *repository) Create(ctx context.Context, name string) (*teamModel.Team, error) {
	r.logger.Debugw("Create called", "name", name)

	team := &teamModel.Team{Name: name}
	err := r.db.WithContext(ctx).Omit("Players").Create(team).Error
	if err != nil {
		if dberr.IsDuplicate(err) {
			return nil, teamModel.ErrTeamExists
		}
		r.logger.Errorw("Create database error", "name", name, "error", err)
		return nil, err
	}

	team.Players = nil
	r.logger.Infow("Create completed", "team_id", team.ID, "name", name)
	return team, nil
}

// GetByID finds a team by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*teamModel.Team, error) {
	r.logger.Debugw("GetByID called", "team_id", id)

	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Players", playersByNumber).
		Where("id = ?", id).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("GetByID team not found", "team_id", id)
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw("GetByID database error", "team_id", id, "error", err)
		return nil, err
	}

	return &team, nil
}

// List returns all teams.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	r.logger.Debugw("List called")

	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Players", playersByNumber).
		Order("id ASC").
		Find(&teams).Error

	if err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}

	if teams == nil {
		teams = []teamModel.Team{}
	}

	r.logger.Debugw("List completed", "count", len(teams))
	return teams, nil
}
