package testutil

import "github.com/mcoot/minesweeper/internal/model"

// GridFromLayout builds a grid from rows of text where '*' marks a mine
// and any other character is a safe cell. All rows must be the same length.
//
//	testutil.GridFromLayout(
//		"...",
//		".*.",
//		"...",
//	)
func GridFromLayout(rows ...string) *model.Grid {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	grid := model.NewGrid(len(rows), cols)
	var mines []model.Position
	for r, line := range rows {
		for c, ch := range line {
			if ch == '*' {
				mines = append(mines, model.Position{Row: r, Col: c})
			}
		}
	}
	grid.SetMines(mines)
	return grid
}

// Pos is shorthand for building a Position in tests
func Pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}
