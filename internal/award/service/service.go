// Package service provides business logic layer for award module.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/award/model"
	"github.com/festy23/softball_scoreboard/internal/award/repository"
	"github.com/festy23/softball_scoreboard/internal/importer"
)

// Service defines the interface for award business logic operations.
type Service interface {
	// ListAwards returns every award ordered by id.
	ListAwards(ctx context.Context) ([]model.Award, error)

	// CreateAward validates and stores a new award.
	CreateAward(ctx context.Context, req *model.SaveAwardRequest) (*model.Award, error)

	// UpdateAward replaces the fields of an existing award.
	UpdateAward(ctx context.Context, id int64, req *model.SaveAwardRequest) (*model.Award, error)

	// ImportAwards parses an awards document and upserts every entry by
	// category and title.
	ImportAwards(ctx context.Context, text string) (*model.ImportAwardsResponse, error)

	// ClearAwards deletes every award.
	ClearAwards(ctx context.Context) (int64, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new award service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) ListAwards(ctx context.Context) ([]model.Award, error) {
	return s.repo.List(ctx)
}

func (s *service) CreateAward(ctx context.Context, req *model.SaveAwardRequest) (*model.Award, error) {
	award, err := fromRequest(req)
	if err != nil {
		s.logger.Debugw("CreateAward validation failed", "category", req.Category, "title", req.Title)
		return nil, err
	}

	if err := s.repo.Create(ctx, &award); err != nil {
		return nil, err
	}

	s.logger.Infow("CreateAward completed", "award_id", award.ID, "title", award.Title)
	return &award, nil
}

func (s *service) UpdateAward(ctx context.Context, id int64, req *model.SaveAwardRequest) (*model.Award, error) {
	if id <= 0 {
		return nil, model.ErrAwardNotFound
	}

	award, err := fromRequest(req)
	if err != nil {
		s.logger.Debugw("UpdateAward validation failed", "award_id", id)
		return nil, err
	}
	award.ID = id

	if err := s.repo.Update(ctx, &award); err != nil {
		return nil, err
	}

	s.logger.Infow("UpdateAward completed", "award_id", id)
	return &award, nil
}

func (s *service) ImportAwards(ctx context.Context, text string) (*model.ImportAwardsResponse, error) {
	entries := importer.ParseAwards(text)
	if len(entries) == 0 {
		return nil, model.ErrNoAwards
	}

	awards := make([]model.Award, len(entries))
	for i, e := range entries {
		awards[i] = model.FromEntry(e)
	}

	if err := s.repo.UpsertByTitle(ctx, awards); err != nil {
		return nil, err
	}

	saved, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("ImportAwards completed", "parsed", len(entries))
	return &model.ImportAwardsResponse{Saved: len(entries), Awards: saved}, nil
}

func (s *service) ClearAwards(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Infow("ClearAwards completed", "deleted", n)
	return n, nil
}

func fromRequest(req *model.SaveAwardRequest) (model.Award, error) {
	award := model.Award{
		Category:    strings.TrimSpace(req.Category),
		Title:       strings.TrimSpace(req.Title),
		PlayerName:  strings.TrimSpace(req.PlayerName),
		TeamName:    strings.TrimSpace(req.TeamName),
		Description: strings.TrimSpace(req.Description),
	}
	if award.Title == "" || !model.ValidCategory(award.Category) {
		return model.Award{}, model.ErrInvalidAward
	}
	return award, nil
}
