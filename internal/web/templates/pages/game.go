package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/web/templates"
	"github.com/mcoot/minesweeper/internal/web/templates/components"
	"github.com/mcoot/minesweeper/internal/web/templates/layout"
)

// GameData is the data for the game page
type GameData struct {
	layout.PageData
	Game *model.Game
}

// Game renders the board page. The panel listens for board updates so every
// open page for the player stays in step.
func Game(data GameData) templ.Component {
	return layout.Base(data.PageData, templates.Func(func(ctx context.Context, b *templates.Builder) error {
		b.Raw(`<div hx-ext="sse" sse-connect="/game/events">`)
		b.Rawf(`<div id="%s" sse-swap="board-update" hx-swap="innerHTML">`, components.PanelID)
		if err := b.Component(ctx, components.GamePanel(data.Game, nil)); err != nil {
			return err
		}
		b.Raw(`</div></div>`)
		return nil
	}))
}
