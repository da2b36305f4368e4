// Package codec converts games to and from the compact form shared by the
// persistent storage backends.
//
// Each grid row is stored as a string with one byte per cell:
//
//	'#' hidden    'F' flagged    '0'..'8' revealed safe cell    '*' revealed mine
//
// Mines themselves come from the mine position list, so a 40x40 grid
// costs 1600 bytes of cell state instead of a JSON object per cell.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mcoot/minesweeper/internal/model"
)

const (
	cellHidden       = '#'
	cellFlagged      = 'F'
	cellRevealedMine = '*'
)

type gameRecord struct {
	ID             model.GameID    `json:"id"`
	PlayerID       model.PlayerID  `json:"player_id"`
	Rows           int             `json:"rows"`
	Cols           int             `json:"cols"`
	Mines          int             `json:"mines"`
	MinePositions  [][2]int        `json:"mine_positions"`
	Cells          []string        `json:"cells"`
	FlagsRemaining int             `json:"flags_remaining"`
	State          model.GameState `json:"state"`
	Moves          int             `json:"moves"`
	LossPosition   *model.Position `json:"loss_position,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	FinishedAt     *time.Time      `json:"finished_at,omitempty"`
}

// EncodeGame serialises a game
func EncodeGame(game *model.Game) ([]byte, error) {
	if game.Grid == nil {
		return nil, fmt.Errorf("encode game %s: missing grid", game.ID)
	}
	grid := game.Grid

	rec := gameRecord{
		ID:             game.ID,
		PlayerID:       game.PlayerID,
		Rows:           grid.Rows,
		Cols:           grid.Cols,
		Mines:          game.Settings.Mines,
		MinePositions:  make([][2]int, len(grid.MinePositions)),
		Cells:          make([]string, grid.Rows),
		FlagsRemaining: game.FlagsRemaining,
		State:          game.State,
		Moves:          game.Moves,
		LossPosition:   game.LossPosition,
		CreatedAt:      game.CreatedAt,
		UpdatedAt:      game.UpdatedAt,
		FinishedAt:     game.FinishedAt,
	}
	for i, pos := range grid.MinePositions {
		rec.MinePositions[i] = [2]int{pos.Row, pos.Col}
	}
	for r := 0; r < grid.Rows; r++ {
		row := make([]byte, grid.Cols)
		for c := 0; c < grid.Cols; c++ {
			row[c] = encodeCell(&grid.Cells[r][c])
		}
		rec.Cells[r] = string(row)
	}

	return json.Marshal(rec)
}

// DecodeGame reverses EncodeGame
func DecodeGame(data []byte) (*model.Game, error) {
	var rec gameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	if len(rec.Cells) != rec.Rows {
		return nil, fmt.Errorf("decode game %s: have %d cell rows, want %d", rec.ID, len(rec.Cells), rec.Rows)
	}

	grid := model.NewGrid(rec.Rows, rec.Cols)
	mines := make([]model.Position, len(rec.MinePositions))
	for i, p := range rec.MinePositions {
		mines[i] = model.Position{Row: p[0], Col: p[1]}
		if !grid.InBounds(mines[i]) {
			return nil, fmt.Errorf("decode game %s: mine %v outside grid", rec.ID, mines[i])
		}
	}
	grid.SetMines(mines)

	for r, row := range rec.Cells {
		if len(row) != rec.Cols {
			return nil, fmt.Errorf("decode game %s: row %d has %d cells, want %d", rec.ID, r, len(row), rec.Cols)
		}
		for c := 0; c < len(row); c++ {
			if err := decodeCell(row[c], &grid.Cells[r][c]); err != nil {
				return nil, fmt.Errorf("decode game %s: cell (%d,%d): %w", rec.ID, r, c, err)
			}
		}
	}

	return &model.Game{
		ID:             rec.ID,
		PlayerID:       rec.PlayerID,
		Settings:       model.Settings{Rows: rec.Rows, Cols: rec.Cols, Mines: rec.Mines},
		Grid:           grid,
		FlagsRemaining: rec.FlagsRemaining,
		State:          rec.State,
		Moves:          rec.Moves,
		LossPosition:   rec.LossPosition,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
		FinishedAt:     rec.FinishedAt,
	}, nil
}

func encodeCell(cell *model.Cell) byte {
	switch {
	case cell.IsFlagged:
		return cellFlagged
	case !cell.IsRevealed:
		return cellHidden
	case cell.IsMine:
		return cellRevealedMine
	default:
		return byte('0' + cell.NeighbourMineCount)
	}
}

func decodeCell(b byte, cell *model.Cell) error {
	switch {
	case b == cellHidden:
	case b == cellFlagged:
		cell.IsFlagged = true
	case b == cellRevealedMine:
		if !cell.IsMine {
			return errors.New("revealed mine marker on a safe cell")
		}
		cell.IsRevealed = true
	case b >= '0' && b <= '8':
		if cell.IsMine {
			return errors.New("revealed count on a mine")
		}
		cell.IsRevealed = true
		cell.NeighbourMineCount = int(b - '0')
	default:
		return fmt.Errorf("unknown cell marker %q", b)
	}
	return nil
}
