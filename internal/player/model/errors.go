package model

import "errors"

var (
	// ErrPlayerNotFound indicates that the requested player does not exist.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrTeamNotFound indicates that the roster target team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrDuplicateNumber indicates that the uniform number is taken on the team.
	ErrDuplicateNumber = errors.New("uniform number already used on this team")
	// ErrInvalidPlayer indicates a missing name or a negative number.
	ErrInvalidPlayer = errors.New("invalid player")
	// ErrEmptyRoster indicates that an import produced no players.
	ErrEmptyRoster = errors.New("roster import contains no players")
	// ErrUnsupportedFormat indicates an import body that is neither text nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported roster format")
)
