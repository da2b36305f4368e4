package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameStarted   EventType = "game_started"
	EventCellRevealed  EventType = "cell_revealed"
	EventCellFlagged   EventType = "cell_flagged"
	EventGameWon       EventType = "game_won"
	EventGameLost      EventType = "game_lost"
	EventGameAbandoned EventType = "game_abandoned"
)

// Event is emitted after every state-changing action on a game
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	PlayerID  PlayerID
	Game      *Game      // snapshot after the action
	Positions []Position // cells touched by the action, in visit order
}

// EventTypeForOutcome maps an action outcome to the event it produces
func EventTypeForOutcome(outcome Outcome) (EventType, bool) {
	switch outcome {
	case OutcomeRevealed:
		return EventCellRevealed, true
	case OutcomeFlagged, OutcomeUnflagged:
		return EventCellFlagged, true
	case OutcomeWon:
		return EventGameWon, true
	case OutcomeLost:
		return EventGameLost, true
	default:
		return "", false
	}
}
