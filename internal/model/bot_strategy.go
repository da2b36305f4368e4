package model

// Bot strategy constants
const (
	BotStrategyRandom = "random"
	BotStrategyDeduce = "deduce"
)

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyRandom:
		return "Random"
	case BotStrategyDeduce:
		return "Deduce"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyDeduce, BotStrategyRandom}
}

// MoveKind is the action a bot move applies
type MoveKind string

const (
	MoveReveal MoveKind = "reveal"
	MoveFlag   MoveKind = "flag"
)

// Move is a single suggested or applied player action
type Move struct {
	Kind     MoveKind
	Position Position
	Certain  bool // false when the strategy had to guess
}
