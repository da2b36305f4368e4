package board

import (
	"log/slog"

	"github.com/gammazero/deque"

	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/model"
)

// Service builds minefields and applies reveals to them
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new board Service
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger.With(slog.String("component", "board-service")),
	}
}

// CreateGrid builds a rows x cols grid holding mineCount mines.
// Inputs must already be validated: 1 <= mineCount <= rows*cols.
func (s *Service) CreateGrid(rows, cols, mineCount int) *model.Grid {
	grid := model.NewGrid(rows, cols)
	grid.SetMines(s.PlaceMines(rows, cols, mineCount))
	return grid
}

// PlaceMines picks mineCount unique positions by rejection sampling.
// Each draw is a uniformly random cell; duplicates are thrown away.
func (s *Service) PlaceMines(rows, cols, mineCount int) []model.Position {
	chosen := make(map[model.Position]struct{}, mineCount)
	positions := make([]model.Position, 0, mineCount)
	draws := 0

	for len(positions) < mineCount {
		draws++
		pos := model.Position{Row: s.random.Intn(rows), Col: s.random.Intn(cols)}
		if _, taken := chosen[pos]; taken {
			continue
		}
		chosen[pos] = struct{}{}
		positions = append(positions, pos)
	}

	s.logger.Debug("mines placed",
		slog.Int("rows", rows),
		slog.Int("cols", cols),
		slog.Int("mines", mineCount),
		slog.Int("draws", draws),
	)

	return positions
}

// CountNeighbourMines returns how many of the up to eight cells around pos
// are mines. Cells outside the grid are never examined.
func CountNeighbourMines(grid *model.Grid, pos model.Position) int {
	count := 0
	for _, n := range grid.Neighbours(pos) {
		if grid.Cells[n.Row][n.Col].IsMine {
			count++
		}
	}
	return count
}

// Reveal uncovers the cell at pos and, when it has no neighbouring mines,
// flood fills outward through every connected zero-count cell. Flagged and
// already revealed cells are skipped. Revealing a mine only marks that cell;
// ending the game is up to the caller.
//
// The returned positions are every cell uncovered by this call, in visit order.
func Reveal(grid *model.Grid, pos model.Position) []model.Position {
	cell := grid.Cell(pos)
	if cell == nil || cell.IsRevealed || cell.IsFlagged {
		return nil
	}

	cell.IsRevealed = true
	revealed := []model.Position{pos}
	if cell.IsMine {
		return revealed
	}

	cell.NeighbourMineCount = CountNeighbourMines(grid, pos)
	if cell.NeighbourMineCount > 0 {
		return revealed
	}

	var worklist deque.Deque[model.Position]
	worklist.PushBack(pos)

	for worklist.Len() > 0 {
		current := worklist.PopFront()
		for _, n := range grid.Neighbours(current) {
			neighbour := &grid.Cells[n.Row][n.Col]
			if neighbour.IsRevealed || neighbour.IsFlagged || neighbour.IsMine {
				continue
			}
			neighbour.IsRevealed = true
			neighbour.NeighbourMineCount = CountNeighbourMines(grid, n)
			revealed = append(revealed, n)
			// Only zero-count cells keep the fill going
			if neighbour.NeighbourMineCount == 0 {
				worklist.PushBack(n)
			}
		}
	}

	return revealed
}

// RevealAllMines uncovers every mine, clearing any flag on it first
func RevealAllMines(grid *model.Grid) []model.Position {
	revealed := make([]model.Position, 0, len(grid.MinePositions))
	for _, pos := range grid.MinePositions {
		cell := &grid.Cells[pos.Row][pos.Col]
		cell.IsFlagged = false
		if !cell.IsRevealed {
			cell.IsRevealed = true
			revealed = append(revealed, pos)
		}
	}
	return revealed
}

// IsCleared reports whether every mine is flagged and every safe cell revealed.
// A revealed mine also passes, which can only happen after a loss.
func IsCleared(grid *model.Grid) bool {
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := &grid.Cells[r][c]
			if !((cell.IsMine && cell.IsFlagged) || cell.IsRevealed) {
				return false
			}
		}
	}
	return true
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateGrid(rows, cols, mineCount int) *model.Grid
	PlaceMines(rows, cols, mineCount int) []model.Position
}

var _ ServiceInterface = (*Service)(nil)
