package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is anyone who can own a game
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately so the hash never travels with the session
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlayerStats is a player's record of finished games
type PlayerStats struct {
	PlayerID  PlayerID
	Played    int
	Won       int
	Lost      int
	Abandoned int
	// BestTimes holds the fastest win per Settings.Key, in milliseconds
	BestTimes map[string]int64
	UpdatedAt time.Time
}

// WinRate returns the fraction of finished games that were won
func (s *PlayerStats) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Played)
}

// Clone returns a deep copy of the stats
func (s *PlayerStats) Clone() *PlayerStats {
	clone := *s
	clone.BestTimes = make(map[string]int64, len(s.BestTimes))
	for k, v := range s.BestTimes {
		clone.BestTimes[k] = v
	}
	return &clone
}
