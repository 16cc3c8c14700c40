package model

// SaveAwardRequest creates or replaces an award.
type SaveAwardRequest struct {
	Category    string `json:"category" binding:"required"`
	Title       string `json:"title" binding:"required"`
	PlayerName  string `json:"player_name"`
	TeamName    string `json:"team_name"`
	Description string `json:"description"`
}

// AwardListResponse is the body of GET /awards.
type AwardListResponse struct {
	Awards []Award `json:"awards"`
}

// ImportAwardsRequest carries a pasted awards document.
type ImportAwardsRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImportAwardsResponse lists the awards written by an import.
type ImportAwardsResponse struct {
	Saved  int     `json:"saved"`
	Awards []Award `json:"awards"`
}
