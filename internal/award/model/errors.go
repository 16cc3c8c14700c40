package model

import "errors"

var (
	// ErrAwardNotFound indicates that the requested award does not exist.
	ErrAwardNotFound = errors.New("award not found")
	// ErrAwardExists indicates another award already has the category and title.
	ErrAwardExists = errors.New("award already exists")
	// ErrInvalidAward indicates a missing title or unknown category.
	ErrInvalidAward = errors.New("invalid award")
	// ErrNoAwards indicates an import without a recognizable award.
	ErrNoAwards = errors.New("no awards found")
)
