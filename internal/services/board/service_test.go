package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minesweeper/internal/dependencies/mocks"
	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random, testutil.NopLogger())
}

func countMines(grid *model.Grid) int {
	return grid.CountWhere(func(c *model.Cell) bool { return c.IsMine })
}

func countRevealed(grid *model.Grid) int {
	return grid.CountWhere(func(c *model.Cell) bool { return c.IsRevealed })
}

// CreateGrid tests

func (s *ServiceSuite) TestCreateGridPlacesQueuedMines() {
	s.random.QueueMines(testutil.Pos(0, 1), testutil.Pos(2, 2))

	grid := s.service.CreateGrid(3, 3, 2)

	s.Equal(3, grid.Rows)
	s.Equal(3, grid.Cols)
	s.Equal(2, grid.MineCount)
	s.Equal([]model.Position{testutil.Pos(0, 1), testutil.Pos(2, 2)}, grid.MinePositions)
	s.True(grid.Cells[0][1].IsMine)
	s.True(grid.Cells[2][2].IsMine)
	s.Equal(2, countMines(grid))
}

func (s *ServiceSuite) TestCreateGridAllCellsStartHidden() {
	grid := s.service.CreateGrid(4, 6, 5)

	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := grid.Cells[r][c]
			s.Equal(r, cell.Row)
			s.Equal(c, cell.Col)
			s.False(cell.IsRevealed)
			s.False(cell.IsFlagged)
		}
	}
}

func (s *ServiceSuite) TestCreateGridRejectsDuplicateDraws() {
	// Second draw repeats the first and must be thrown away
	s.random.QueueMines(testutil.Pos(1, 1), testutil.Pos(1, 1), testutil.Pos(0, 0))

	grid := s.service.CreateGrid(3, 3, 2)

	s.Equal([]model.Position{testutil.Pos(1, 1), testutil.Pos(0, 0)}, grid.MinePositions)
	s.Equal(2, countMines(grid))
}

func (s *ServiceSuite) TestCreateGridMineCountMatches() {
	for _, tc := range []struct{ rows, cols, mines int }{
		{1, 1, 1},
		{10, 10, 10},
		{5, 5, 25},
		{40, 40, 1600},
		{16, 30, 99},
	} {
		grid := s.service.CreateGrid(tc.rows, tc.cols, tc.mines)
		s.Equal(tc.mines, countMines(grid), "%dx%d with %d mines", tc.rows, tc.cols, tc.mines)
		s.Len(grid.MinePositions, tc.mines)

		seen := make(map[model.Position]bool)
		for _, pos := range grid.MinePositions {
			s.True(grid.InBounds(pos))
			s.False(seen[pos], "duplicate mine at %v", pos)
			seen[pos] = true
		}
	}
}

// CountNeighbourMines tests

func (s *ServiceSuite) TestCountNeighbourMinesCentre() {
	grid := testutil.GridFromLayout(
		"*.*",
		"...",
		"**.",
	)

	s.Equal(4, CountNeighbourMines(grid, testutil.Pos(1, 1)))
}

func (s *ServiceSuite) TestCountNeighbourMinesDoesNotCountSelf() {
	grid := testutil.GridFromLayout(
		"...",
		".*.",
		"...",
	)

	s.Equal(0, CountNeighbourMines(grid, testutil.Pos(1, 1)))
	s.Equal(1, CountNeighbourMines(grid, testutil.Pos(0, 0)))
}

func (s *ServiceSuite) TestCountNeighbourMinesNoWraparound() {
	grid := testutil.GridFromLayout(
		"...*",
		"....",
		"....",
		"*...",
	)

	// (0,0) would see (0,3) and (3,0) if edges wrapped
	s.Equal(0, CountNeighbourMines(grid, testutil.Pos(0, 0)))
	s.Equal(1, CountNeighbourMines(grid, testutil.Pos(0, 2)))
	s.Equal(1, CountNeighbourMines(grid, testutil.Pos(2, 1)))
}

func (s *ServiceSuite) TestCountNeighbourMinesSingleCell() {
	grid := testutil.GridFromLayout(".")

	s.Equal(0, CountNeighbourMines(grid, testutil.Pos(0, 0)))
}

// Reveal tests

func (s *ServiceSuite) TestRevealNumberedCellDoesNotSpread() {
	grid := testutil.GridFromLayout(
		"*..",
		"...",
		"...",
	)

	revealed := Reveal(grid, testutil.Pos(0, 1))

	s.Equal([]model.Position{testutil.Pos(0, 1)}, revealed)
	s.Equal(1, grid.Cells[0][1].NeighbourMineCount)
	s.Equal(1, countRevealed(grid))
}

func (s *ServiceSuite) TestRevealCascadeFromCorner() {
	grid := testutil.GridFromLayout(
		".....",
		".....",
		".....",
		".....",
		"....*",
	)

	revealed := Reveal(grid, testutil.Pos(0, 0))

	s.Len(revealed, 24)
	s.Equal(24, countRevealed(grid))
	s.False(grid.Cells[4][4].IsRevealed)
	s.Equal(1, grid.Cells[3][3].NeighbourMineCount)
	s.Equal(1, grid.Cells[3][4].NeighbourMineCount)
	s.Equal(1, grid.Cells[4][3].NeighbourMineCount)
	s.Equal(0, grid.Cells[2][2].NeighbourMineCount)
}

func (s *ServiceSuite) TestRevealStopsAtNumberedBoundary() {
	grid := testutil.GridFromLayout(
		"..*..",
		"..*..",
		"..*..",
	)

	Reveal(grid, testutil.Pos(0, 0))

	for r := 0; r < 3; r++ {
		s.True(grid.Cells[r][0].IsRevealed)
		s.True(grid.Cells[r][1].IsRevealed)
		s.False(grid.Cells[r][3].IsRevealed)
		s.False(grid.Cells[r][4].IsRevealed)
	}
	s.Equal(3, grid.Cells[1][1].NeighbourMineCount)
	s.Equal(2, grid.Cells[0][1].NeighbourMineCount)
}

func (s *ServiceSuite) TestRevealSkipsFlaggedNeighbours() {
	grid := testutil.GridFromLayout(
		"....",
		"....",
		"...*",
	)
	grid.Cells[0][3].IsFlagged = true

	Reveal(grid, testutil.Pos(0, 0))

	s.False(grid.Cells[0][3].IsRevealed)
	s.True(grid.Cells[0][3].IsFlagged)
}

func (s *ServiceSuite) TestRevealFlaggedCellIsNoop() {
	grid := testutil.GridFromLayout(
		"...",
		"...",
	)
	grid.Cells[0][0].IsFlagged = true

	revealed := Reveal(grid, testutil.Pos(0, 0))

	s.Empty(revealed)
	s.False(grid.Cells[0][0].IsRevealed)
	s.Equal(0, countRevealed(grid))
}

func (s *ServiceSuite) TestRevealIsIdempotent() {
	grid := testutil.GridFromLayout(
		"....",
		"....",
		"...*",
	)
	Reveal(grid, testutil.Pos(0, 0))
	before := grid.Clone()

	revealed := Reveal(grid, testutil.Pos(0, 0))

	s.Empty(revealed)
	s.Equal(before, grid)
}

func (s *ServiceSuite) TestRevealMineMarksOnlyThatCell() {
	grid := testutil.GridFromLayout(
		"...",
		".*.",
		"...",
	)

	revealed := Reveal(grid, testutil.Pos(1, 1))

	s.Equal([]model.Position{testutil.Pos(1, 1)}, revealed)
	s.True(grid.Cells[1][1].IsRevealed)
	s.Equal(1, countRevealed(grid))
}

func (s *ServiceSuite) TestRevealOutOfBoundsIsNoop() {
	grid := testutil.GridFromLayout("..")

	s.Empty(Reveal(grid, testutil.Pos(0, 2)))
	s.Empty(Reveal(grid, testutil.Pos(-1, 0)))
}

func (s *ServiceSuite) TestRevealLargestBoard() {
	grid := s.service.CreateGrid(40, 40, 1)
	mine := grid.MinePositions[0]
	start := testutil.Pos(0, 0)
	if mine == start {
		start = testutil.Pos(39, 39)
	}

	Reveal(grid, start)

	// A single mine can never wall off part of the board
	s.Equal(1599, countRevealed(grid))
}

// RevealAllMines tests

func (s *ServiceSuite) TestRevealAllMinesClearsFlags() {
	grid := testutil.GridFromLayout(
		"*..",
		"...",
		"..*",
	)
	grid.Cells[0][0].IsFlagged = true

	revealed := RevealAllMines(grid)

	s.ElementsMatch([]model.Position{testutil.Pos(0, 0), testutil.Pos(2, 2)}, revealed)
	s.False(grid.Cells[0][0].IsFlagged)
	s.True(grid.Cells[0][0].IsRevealed)
	s.True(grid.Cells[2][2].IsRevealed)
	s.False(grid.Cells[1][1].IsRevealed)
}

// IsCleared tests

func (s *ServiceSuite) TestIsClearedRequiresEverySafeCellRevealed() {
	grid := testutil.GridFromLayout(
		"*.",
		"..",
	)
	grid.Cells[0][0].IsFlagged = true
	Reveal(grid, testutil.Pos(0, 1))
	Reveal(grid, testutil.Pos(1, 0))

	s.False(IsCleared(grid))

	Reveal(grid, testutil.Pos(1, 1))
	s.True(IsCleared(grid))
}

func (s *ServiceSuite) TestIsClearedRequiresEveryMineFlagged() {
	grid := testutil.GridFromLayout(
		"*.",
		"..",
	)
	Reveal(grid, testutil.Pos(0, 1))
	Reveal(grid, testutil.Pos(1, 0))
	Reveal(grid, testutil.Pos(1, 1))

	s.False(IsCleared(grid))

	grid.Cells[0][0].IsFlagged = true
	s.True(IsCleared(grid))
}

func (s *ServiceSuite) TestIsClearedFlaggedSafeCellFails() {
	grid := testutil.GridFromLayout("*.")
	grid.Cells[0][0].IsFlagged = true
	grid.Cells[0][1].IsFlagged = true

	s.False(IsCleared(grid))
}
