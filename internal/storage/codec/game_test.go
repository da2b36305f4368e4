package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minesweeper/internal/model"
)

func lostGame() *model.Game {
	grid := model.NewGrid(2, 3)
	grid.SetMines([]model.Position{{Row: 0, Col: 2}, {Row: 1, Col: 2}})
	grid.Cells[0][0].IsRevealed = true
	grid.Cells[0][1].IsRevealed = true
	grid.Cells[0][1].NeighbourMineCount = 2
	grid.Cells[0][2].IsRevealed = true
	grid.Cells[1][0].IsFlagged = true

	finished := time.Date(2026, 3, 1, 12, 0, 30, 0, time.UTC)
	return &model.Game{
		ID:             "G1",
		PlayerID:       "p1",
		Settings:       model.Settings{Rows: 2, Cols: 3, Mines: 2},
		Grid:           grid,
		FlagsRemaining: 1,
		State:          model.GameStateLost,
		Moves:          3,
		LossPosition:   &model.Position{Row: 0, Col: 2},
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:      finished,
		FinishedAt:     &finished,
	}
}

func TestEncodeUsesCompactRows(t *testing.T) {
	data, err := EncodeGame(lostGame())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"cells":["02*","F##"]`)
}

func TestDecodeRestoresGame(t *testing.T) {
	original := lostGame()
	data, err := EncodeGame(original)
	require.NoError(t, err)

	decoded, err := DecodeGame(data)
	require.NoError(t, err)

	assert.Equal(t, original.Grid, decoded.Grid)
	assert.Equal(t, original.Settings, decoded.Settings)
	assert.Equal(t, original.LossPosition, decoded.LossPosition)
	assert.True(t, original.FinishedAt.Equal(*decoded.FinishedAt))
	assert.Equal(t, original.State, decoded.State)
}

func TestEncodeRequiresGrid(t *testing.T) {
	_, err := EncodeGame(&model.Game{ID: "G1"})
	assert.Error(t, err)
}

func TestDecodeRejectsCorruptRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"row count mismatch", `{"rows":2,"cols":1,"mine_positions":[],"cells":["#"]}`},
		{"short row", `{"rows":1,"cols":2,"mine_positions":[],"cells":["#"]}`},
		{"unknown marker", `{"rows":1,"cols":1,"mine_positions":[],"cells":["?"]}`},
		{"mine outside grid", `{"rows":1,"cols":1,"mine_positions":[[3,3]],"cells":["#"]}`},
		{"count on a mine", `{"rows":1,"cols":1,"mine_positions":[[0,0]],"cells":["1"]}`},
		{"mine marker on safe cell", `{"rows":1,"cols":1,"mine_positions":[],"cells":["*"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGame([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
