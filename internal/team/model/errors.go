package model

import "errors"

// MaxNameLength matches the teams.name column.
const MaxNameLength = 255

var (
	// ErrTeamExists is returned when the name is already taken.
	ErrTeamExists = errors.New("team already exists")
	// ErrTeamNotFound is returned for unknown team ids.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName is returned for blank or overlong names.
	ErrInvalidTeamName = errors.New("invalid team name")
)
