package model

import "github.com/festy23/softball_scoreboard/internal/engine"

// UpdatePlayerRequest changes the provided fields and leaves nil ones alone.
type UpdatePlayerRequest struct {
	Number       *int    `json:"number"`
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	PlaceOfBirth *string `json:"place_of_birth"`
}

// Empty reports whether the request changes nothing.
func (r UpdatePlayerRequest) Empty() bool {
	return r.Number == nil && r.Name == nil && r.Role == nil && r.PlaceOfBirth == nil
}

// ImportResponse summarizes a roster import.
type ImportResponse struct {
	TeamID   int64           `json:"team_id"`
	Imported int             `json:"imported"`
	Skipped  []string        `json:"skipped"`
	Players  []engine.Player `json:"players"`
}

// ImportTextRequest is the JSON form of a pasted roster.
type ImportTextRequest struct {
	Text string `json:"text" binding:"required"`
}
