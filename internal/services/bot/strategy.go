package bot

import "github.com/mcoot/minesweeper/internal/model"

// Strategy decides the next move for an ongoing game
type Strategy interface {
	// ChooseMove returns the next move, or false if no cell can be acted on
	ChooseMove(game *model.Game) (model.Move, bool)
}

// hiddenCells lists cells that are neither revealed nor flagged, row by row
func hiddenCells(grid *model.Grid) []model.Position {
	var hidden []model.Position
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			if grid.Cells[r][c].IsHidden() {
				hidden = append(hidden, model.Position{Row: r, Col: c})
			}
		}
	}
	return hidden
}
