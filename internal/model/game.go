package model

import (
	"fmt"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateOngoing GameState = "ongoing"
	GameStateWon     GameState = "won"
	GameStateLost    GameState = "lost"
)

// Status text shown to the player
const (
	StatusOngoing = "Ongoing Game"
	StatusLost    = "Game Over"
	StatusWon     = "You won!"
)

// Game is one playthrough of a single grid by a single player
type Game struct {
	ID             GameID
	PlayerID       PlayerID
	Settings       Settings
	Grid           *Grid
	FlagsRemaining int
	State          GameState
	Moves          int

	// LossPosition is the mine that ended the game, set only when lost
	LossPosition *Position

	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt *time.Time
}

// IsOver returns true once the game has been won or lost
func (g *Game) IsOver() bool {
	return g.State == GameStateWon || g.State == GameStateLost
}

// StatusText returns the game status line
func (g *Game) StatusText() string {
	switch g.State {
	case GameStateWon:
		return StatusWon
	case GameStateLost:
		return StatusLost
	default:
		return StatusOngoing
	}
}

// FlagsText returns the flags-remaining line
func (g *Game) FlagsText() string {
	return fmt.Sprintf("Flags left: %d", g.FlagsRemaining)
}

// Duration returns how long the game took, or has taken as of now
func (g *Game) Duration(now time.Time) time.Duration {
	if g.FinishedAt != nil {
		return g.FinishedAt.Sub(g.CreatedAt)
	}
	return now.Sub(g.CreatedAt)
}

// Outcome describes what a single player action did to the game
type Outcome string

const (
	OutcomeNone      Outcome = "none"     // no state change
	OutcomeRevealed  Outcome = "revealed" // safe cells uncovered
	OutcomeFlagged   Outcome = "flagged"
	OutcomeUnflagged Outcome = "unflagged"
	OutcomeWon       Outcome = "won"
	OutcomeLost      Outcome = "lost"
)

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	if g.Grid != nil {
		clone.Grid = g.Grid.Clone()
	}
	if g.LossPosition != nil {
		pos := *g.LossPosition
		clone.LossPosition = &pos
	}
	if g.FinishedAt != nil {
		t := *g.FinishedAt
		clone.FinishedAt = &t
	}
	return &clone
}
