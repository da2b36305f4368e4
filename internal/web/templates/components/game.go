package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/web/templates"
)

// GameStatus renders the status line and the flags-remaining line
func GameStatus(game *model.Game) templ.Component {
	return templates.Func(func(_ context.Context, b *templates.Builder) error {
		b.Rawf(`<div class="status"><span id="game-status" data-state="%s">`, game.State)
		b.Text(game.StatusText())
		b.Raw(`</span><span id="flag-status">`)
		b.Text(game.FlagsText())
		b.Raw(`</span></div>`)
		return nil
	})
}

// GamePanel renders the contents of the game panel: status, board and
// controls. It is the fragment swapped in after every action.
func GamePanel(game *model.Game, hint *model.Move) templ.Component {
	return templates.Func(func(ctx context.Context, b *templates.Builder) error {
		if err := b.Component(ctx, GameStatus(game)); err != nil {
			return err
		}
		if err := b.Component(ctx, Board(game, hint)); err != nil {
			return err
		}

		if hint != nil {
			b.Rawf(`<p id="hint-text" class="hint-text">Try to %s row %d, column %d`,
				hint.Kind, hint.Position.Row+1, hint.Position.Col+1)
			if !hint.Certain {
				b.Raw(` (a guess)`)
			}
			b.Raw(`.</p>`)
		}

		b.Raw(`<div class="controls">`)
		if !game.IsOver() {
			b.Rawf(`<button type="button" hx-post="/game/hint" hx-target="#%s">Hint</button>`, PanelID)
			b.Raw(`<button type="button" hx-post="/game/abandon" hx-confirm="Abandon this game?">Abandon</button>`)
		}
		b.Raw(`<a href="/">New game</a></div>`)
		return nil
	})
}

// NoGamePanel fills the game panel once the game is gone
func NoGamePanel() templ.Component {
	return templates.Func(func(_ context.Context, b *templates.Builder) error {
		b.Raw(`<p id="no-game">No game in progress. <a href="/">Start a new game</a></p>`)
		return nil
	})
}
