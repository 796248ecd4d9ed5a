package listservice

import "errors"

var (
	// ErrLevelNotFound is returned when no level holds the requested rank.
	ErrLevelNotFound = errors.New("level not found")

	// ErrPlayerNotFound is returned when a player has no standing.
	ErrPlayerNotFound = errors.New("player not found")
)
