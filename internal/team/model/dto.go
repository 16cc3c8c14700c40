package model

import "github.com/festy23/softball_scoreboard/internal/engine"

// CreateTeamRequest represents the request to create a team.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// TeamListResponse is the body of GET /teams.
type TeamListResponse struct {
	Teams []engine.Team `json:"teams"`
}
