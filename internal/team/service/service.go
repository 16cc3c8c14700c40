// Package service provides business logic layer for team module.
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/engine"
	teamModel "github.com/festy23/softball_scoreboard/internal/team/model"
	"github.com/festy23/softball_scoreboard/internal/team/repository"
)

// RosterSync is told when teams or players change so that it can refresh
// its in-memory roster.
type RosterSync interface {
	ReloadRoster(ctx context.Context) error
}

// Service defines the interface for team business logic operations.
type Service interface {
	// ListTeams returns every team with its roster.
	ListTeams(ctx context.Context) ([]engine.Team, error)

	// GetTeam returns a team with its roster.
	GetTeam(ctx context.Context, id int64) (*engine.Team, error)

	// CreateTeam creates a team with an empty roster.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*engine.Team, error)
}

type service struct {
	repo   repository.Repository
	sync   RosterSync
	logger *zap.SugaredLogger
}

// New creates a new team service instance. sync may be nil.
func New(repo repository.Repository, sync RosterSync, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		sync:   sync,
		logger: logger,
	}
}

// ListTeams returns every team.
func (s *service) ListTeams(ctx context.Context) ([]engine.Team, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return teamModel.ToEngineTeams(teams), nil
}

// GetTeam returns one team.
func (s *service) GetTeam(ctx context.Context, id int64) (*engine.Team, error) {
	if id <= 0 {
		return nil, teamModel.ErrTeamNotFound
	}

	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := team.ToEngine()
	return &out, nil
}

// CreateTeam validates the name and creates the team.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*engine.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > teamModel.MaxNameLength {
		s.logger.Debugw("CreateTeam validation failed", "name_length", len(name))
		return nil, teamModel.ErrInvalidTeamName
	}

	team, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("CreateTeam completed", "team_id", team.ID, "name", name)
	s.reload(ctx)

	out := team.ToEngine()
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
