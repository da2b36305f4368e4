package model

// Position identifies a cell on the grid
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Cell is a single square of the minefield
type Cell struct {
	Row                int
	Col                int
	IsMine             bool
	IsFlagged          bool
	IsRevealed         bool
	NeighbourMineCount int // only meaningful once revealed and not a mine
}

// Position returns the cell's coordinates
func (c *Cell) Position() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// IsHidden returns true if the cell is neither revealed nor flagged
func (c *Cell) IsHidden() bool {
	return !c.IsRevealed && !c.IsFlagged
}

// Grid owns the rows x cols matrix of cells and the mine layout
type Grid struct {
	Rows          int
	Cols          int
	MineCount     int
	MinePositions []Position // fixed once the grid is built
	Cells         [][]Cell   // Row-major: Cells[row][col]
}

// NewGrid creates a grid with no mines, every cell hidden
func NewGrid(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
		for c := range cells[r] {
			cells[r][c] = Cell{Row: r, Col: c}
		}
	}
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// InBounds returns true if the position lies within the grid
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// Cell returns the cell at the given position, or nil if out of bounds
func (g *Grid) Cell(pos Position) *Cell {
	if !g.InBounds(pos) {
		return nil
	}
	return &g.Cells[pos.Row][pos.Col]
}

// Neighbours returns the in-bounds positions of the 3x3 block around pos,
// excluding pos itself. There is no wraparound at the edges.
func (g *Grid) Neighbours(pos Position) []Position {
	result := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Position{Row: pos.Row + dr, Col: pos.Col + dc}
			if g.InBounds(n) {
				result = append(result, n)
			}
		}
	}
	return result
}

// SetMines marks the given positions as mines. Called once at construction.
func (g *Grid) SetMines(positions []Position) {
	g.MinePositions = make([]Position, len(positions))
	copy(g.MinePositions, positions)
	g.MineCount = len(positions)
	for _, pos := range positions {
		g.Cells[pos.Row][pos.Col].IsMine = true
	}
}

// CountWhere returns the number of cells matching the predicate
func (g *Grid) CountWhere(pred func(*Cell) bool) int {
	count := 0
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if pred(&g.Cells[r][c]) {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		Rows:          g.Rows,
		Cols:          g.Cols,
		MineCount:     g.MineCount,
		MinePositions: make([]Position, len(g.MinePositions)),
		Cells:         make([][]Cell, len(g.Cells)),
	}
	copy(clone.MinePositions, g.MinePositions)
	for r := range g.Cells {
		clone.Cells[r] = make([]Cell, len(g.Cells[r]))
		copy(clone.Cells[r], g.Cells[r])
	}
	return clone
}

// CountTier groups neighbour counts into display tiers: 0 is not shown,
// 1 and 2 have their own tier, and everything from 3 up shares one.
func CountTier(count int) int {
	switch {
	case count <= 0:
		return 0
	case count >= 3:
		return 3
	default:
		return count
	}
}
