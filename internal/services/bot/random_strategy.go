package bot

import (
	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/model"
)

// RandomStrategy reveals a random hidden cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove picks a uniformly random hidden, unflagged cell to reveal
func (s *RandomStrategy) ChooseMove(game *model.Game) (model.Move, bool) {
	hidden := hiddenCells(game.Grid)
	if len(hidden) == 0 {
		return model.Move{}, false
	}
	return model.Move{
		Kind:     model.MoveReveal,
		Position: hidden[s.random.Intn(len(hidden))],
	}, true
}
