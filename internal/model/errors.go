package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrNoActiveGame    = errors.New("player has no active game")
	ErrInvalidPosition = errors.New("invalid grid position")
	ErrUnknownPreset   = errors.New("unknown preset")

	// Stats errors
	ErrStatsNotFound = errors.New("stats not found")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
	ErrNoMoveAvailable = errors.New("no move available")
)
