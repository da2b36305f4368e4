package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/web/templates"
	"github.com/mcoot/minesweeper/internal/web/templates/components"
	"github.com/mcoot/minesweeper/internal/web/templates/layout"
)

// HomeData is the data for the home page
type HomeData struct {
	layout.PageData
	Form          components.NewGameFormData
	HasActiveGame bool
	Stats         *model.PlayerStats
	Next          string
}

// Home renders the new game form for players, or the sign-in choices
func Home(data HomeData) templ.Component {
	return layout.Base(data.PageData, templates.Func(func(ctx context.Context, b *templates.Builder) error {
		b.Raw(`<h1>Minesweeper</h1>`)

		if data.Player == nil {
			b.Raw(`<section id="sign-in"><h2>Jump in</h2>`)
			if err := b.Component(ctx, components.GuestForm(data.Next)); err != nil {
				return err
			}
			b.Raw(`<p>Or <a href="/login">log in</a> or <a href="/register">create an account</a> to keep your record.</p></section>`)
			return nil
		}

		if data.HasActiveGame {
			b.Raw(`<p id="continue"><a href="/game">Continue your current game</a></p>`)
		}

		b.Raw(`<section id="new-game"><h2>New game</h2>`)
		if err := b.Component(ctx, components.NewGameForm(data.Form)); err != nil {
			return err
		}
		b.Raw(`</section>`)

		if data.Stats != nil {
			if err := b.Component(ctx, components.StatsSummary(data.Stats)); err != nil {
				return err
			}
		}
		return nil
	}))
}
