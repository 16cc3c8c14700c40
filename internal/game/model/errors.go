package model

import "errors"

var (
	// ErrGameNotFound indicates that the requested game does not exist.
	ErrGameNotFound = errors.New("game not found")
	// ErrPlayerNotFound indicates a box score row for an unknown player.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPlayerNotInGame indicates a player whose team is not playing the game.
	ErrPlayerNotInGame = errors.New("player is not on either team of this game")
	// ErrInvalidField indicates a rejected game or stat value.
	ErrInvalidField = errors.New("invalid field value")
	// ErrTeamsNotAssigned indicates a box score import into a game without both teams.
	ErrTeamsNotAssigned = errors.New("game teams are not assigned")
	// ErrGameIDMismatch indicates a box score whose GAME_ID names another game.
	ErrGameIDMismatch = errors.New("box score belongs to another game")
	// ErrClosed indicates a mutation after the tournament was shut down.
	ErrClosed = errors.New("tournament is closed")
	// ErrResetInProgress indicates a mutation while the tournament is being reset.
	ErrResetInProgress = errors.New("tournament reset in progress")
)
