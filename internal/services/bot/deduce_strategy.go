package bot

import "github.com/mcoot/minesweeper/internal/model"

// DeduceStrategy looks at each revealed number on its own. If the number is
// already met by adjacent flags, the other hidden neighbours are safe. If the
// hidden and flagged neighbours together equal the number, they are all
// mines. With nothing certain it falls back to another strategy.
type DeduceStrategy struct {
	fallback Strategy
}

// NewDeduceStrategy creates a new DeduceStrategy
func NewDeduceStrategy(fallback Strategy) *DeduceStrategy {
	return &DeduceStrategy{fallback: fallback}
}

// ChooseMove prefers a certain reveal, then a certain flag, then a guess
func (s *DeduceStrategy) ChooseMove(game *model.Game) (model.Move, bool) {
	if move, ok := s.findSafe(game.Grid); ok {
		return move, true
	}
	if game.FlagsRemaining > 0 {
		if move, ok := s.findMine(game.Grid); ok {
			return move, true
		}
	}
	if s.fallback == nil {
		return model.Move{}, false
	}
	return s.fallback.ChooseMove(game)
}

func (s *DeduceStrategy) findSafe(grid *model.Grid) (model.Move, bool) {
	for _, cell := range numberedCells(grid) {
		flagged, hidden := neighbourState(grid, cell.Position())
		if flagged == cell.NeighbourMineCount && len(hidden) > 0 {
			return model.Move{Kind: model.MoveReveal, Position: hidden[0], Certain: true}, true
		}
	}
	return model.Move{}, false
}

func (s *DeduceStrategy) findMine(grid *model.Grid) (model.Move, bool) {
	for _, cell := range numberedCells(grid) {
		flagged, hidden := neighbourState(grid, cell.Position())
		if len(hidden) > 0 && flagged+len(hidden) == cell.NeighbourMineCount {
			return model.Move{Kind: model.MoveFlag, Position: hidden[0], Certain: true}, true
		}
	}
	return model.Move{}, false
}

// numberedCells returns revealed safe cells with at least one adjacent mine
func numberedCells(grid *model.Grid) []*model.Cell {
	var cells []*model.Cell
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := &grid.Cells[r][c]
			if cell.IsRevealed && !cell.IsMine && cell.NeighbourMineCount > 0 {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// neighbourState counts flagged neighbours and lists hidden unflagged ones
func neighbourState(grid *model.Grid, pos model.Position) (int, []model.Position) {
	flagged := 0
	var hidden []model.Position
	for _, n := range grid.Neighbours(pos) {
		cell := grid.Cell(n)
		switch {
		case cell.IsFlagged:
			flagged++
		case !cell.IsRevealed:
			hidden = append(hidden, n)
		}
	}
	return flagged, hidden
}
