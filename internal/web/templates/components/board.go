package components

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/web/templates"
)

// PanelID is the element every game action re-renders
const PanelID = "game-panel"

const (
	flagSymbol = "&#9873;"
	mineSymbol = "&#128163;"
)

// Board renders the grid. Cells carry reveal and flag actions only while
// the game is ongoing; hint highlights one cell.
func Board(game *model.Game, hint *model.Move) templ.Component {
	return templates.Func(func(_ context.Context, b *templates.Builder) error {
		boardClass := "board"
		switch game.State {
		case model.GameStateWon:
			boardClass += " won"
		case model.GameStateLost:
			boardClass += " lost"
		}

		grid := game.Grid
		b.Rawf(`<div id="board" class="%s" style="grid-template-columns: repeat(%d, 35px)">`, boardClass, grid.Cols)
		for r := 0; r < grid.Rows; r++ {
			for c := 0; c < grid.Cols; c++ {
				writeCell(b, game, &grid.Cells[r][c], hint)
			}
		}
		b.Raw(`</div>`)
		return nil
	})
}

func writeCell(b *templates.Builder, game *model.Game, cell *model.Cell, hint *model.Move) {
	pos := cell.Position()
	classes := []string{"cell"}
	content := ""

	switch {
	case cell.IsFlagged:
		classes = append(classes, "flagged")
		content = flagSymbol
	case !cell.IsRevealed:
		classes = append(classes, "hidden")
	case cell.IsMine:
		classes = append(classes, "revealed", "mine")
		if game.LossPosition != nil && *game.LossPosition == pos {
			classes = append(classes, "exploded")
		}
		content = mineSymbol
	default:
		classes = append(classes, "revealed")
		if tier := model.CountTier(cell.NeighbourMineCount); tier > 0 {
			classes = append(classes, "tier-"+strconv.Itoa(tier))
			content = strconv.Itoa(cell.NeighbourMineCount)
		}
	}
	if hint != nil && hint.Position == pos {
		classes = append(classes, "hint")
	}

	vals := `{"row": ` + strconv.Itoa(pos.Row) + `, "col": ` + strconv.Itoa(pos.Col) + `}`
	class := strings.Join(classes, " ")

	if game.IsOver() || cell.IsRevealed {
		b.Raw(`<div class="cell-wrap" oncontextmenu="return false">`)
		b.Rawf(`<button type="button" class="%s" data-row="%d" data-col="%d" disabled>%s</button>`,
			class, pos.Row, pos.Col, content)
		b.Raw(`</div>`)
		return
	}

	b.Rawf(`<div class="cell-wrap" hx-post="/game/flag" hx-trigger="contextmenu" hx-vals='%s' hx-target="#%s" oncontextmenu="return false">`,
		vals, PanelID)
	b.Rawf(`<button type="button" class="%s" data-row="%d" data-col="%d" hx-post="/game/reveal" hx-vals='%s' hx-target="#%s">%s</button>`,
		class, pos.Row, pos.Col, vals, PanelID, content)
	b.Raw(`</div>`)
}
