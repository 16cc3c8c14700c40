package model

import "github.com/festy23/softball_scoreboard/internal/engine"

// UpdateGameRequest changes the provided fields of a game. A team id of 0
// unassigns the side.
type UpdateGameRequest struct {
	Team1ID *int64  `json:"team1_id"`
	Team2ID *int64  `json:"team2_id"`
	Score1  *string `json:"score1"`
	Score2  *string `json:"score2"`
	Hits1   *string `json:"hits1"`
	Hits2   *string `json:"hits2"`
	Errors1 *string `json:"errors1"`
	Errors2 *string `json:"errors2"`
	Day     *string `json:"day"`
	Time    *string `json:"time"`
}

// SetCellRequest is the body of an inning cell edit.
type SetCellRequest struct {
	Value string `json:"value"`
}

// ImportBoxScoreRequest carries a pasted box score.
type ImportBoxScoreRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImportBoxScoreResponse summarizes a box score import. Unmatched lists the
// rows whose uniform number is not on the side's roster.
type ImportBoxScoreResponse struct {
	Game      engine.Game `json:"game"`
	Batting   int         `json:"batting"`
	Pitching  int         `json:"pitching"`
	Unmatched []string    `json:"unmatched"`
}

// GameListResponse is the body of GET /games.
type GameListResponse struct {
	Games []engine.Game `json:"games"`
}

// ChampionshipResponse describes the championship game and its outcome.
type ChampionshipResponse struct {
	Game       *engine.Game `json:"game"`
	Champion   string       `json:"champion"`
	InProgress bool         `json:"in_progress"`
}

// FlushResponse reports a synchronous save.
type FlushResponse struct {
	Saved  int      `json:"saved"`
	Errors []string `json:"errors"`
}

// Snapshot is a consistent copy of the tournament state. Version increases
// with every mutation.
type Snapshot struct {
	Version  uint64        `json:"version"`
	Teams    []engine.Team `json:"teams"`
	Games    []engine.Game `json:"games"`
	Champion string        `json:"champion"`
}
