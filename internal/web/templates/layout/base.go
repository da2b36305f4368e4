package layout

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/web/templates"
)

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string // success, error or info
	Message string
}

// PageData is common to every full page
type PageData struct {
	Title  string
	Player *model.Player
	Flash  *FlashMessage
}

const styles = `
body { font-family: system-ui, sans-serif; margin: 0; background: #fafafa; color: #222; }
nav { display: flex; justify-content: space-between; align-items: center; padding: 0.5rem 1rem; background: #2d3436; color: #fff; }
nav a { color: #fff; text-decoration: none; font-weight: bold; }
nav form { display: inline; }
main { max-width: 1500px; margin: 0 auto; padding: 1rem; }
.flash { padding: 0.5rem 1rem; margin-bottom: 1rem; border-radius: 4px; }
.flash-error { background: #fde2e2; }
.flash-success { background: #e2f7ea; }
.flash-info { background: #e2ecf7; }
.status { display: flex; gap: 2rem; font-size: 1.2rem; margin-bottom: 0.75rem; }
.board { display: grid; gap: 2px; width: max-content; user-select: none; }
.cell { width: 35px; height: 35px; padding: 0; border: none; font-size: 1.1rem; font-weight: bold; background: #dadddf; cursor: pointer; }
.cell.revealed { background: #f0efef; cursor: default; }
.cell.mine { background: #ec7373; }
.cell.exploded { background: red; }
.cell.tier-1 { color: #0f4c75; }
.cell.tier-2 { color: #2c786c; }
.cell.tier-3 { color: #9d2503; }
.board.won .cell.revealed { background: #4dd599; }
.cell.hint { outline: 3px solid #f0c040; outline-offset: -3px; }
.controls { display: flex; gap: 0.5rem; margin-top: 1rem; }
.field-error { color: #c0392b; font-size: 0.9rem; }
form.stacked label { display: block; margin-top: 0.5rem; }
`

// Base wraps page content in the document shell
func Base(data PageData, content templ.Component) templ.Component {
	return templates.Func(func(ctx context.Context, b *templates.Builder) error {
		b.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.Rawf(`<title>%s - Minesweeper</title>`, templates.Escape(data.Title))
		b.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		b.Raw(`<script src="https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"></script>`)
		b.Raw(`<style>` + styles + `</style></head><body>`)

		b.Raw(`<nav><a href="/">Minesweeper</a>`)
		if data.Player != nil {
			b.Raw(`<span class="player">Playing as <strong>`)
			b.Text(data.Player.DisplayName)
			b.Raw(`</strong> <form method="post" action="/auth/logout"><button type="submit">Log out</button></form></span>`)
		}
		b.Raw(`</nav><main>`)

		if data.Flash != nil {
			b.Rawf(`<div class="flash flash-%s" role="status">`, templates.Escape(data.Flash.Type))
			b.Text(data.Flash.Message)
			b.Raw(`</div>`)
		}

		if err := b.Component(ctx, content); err != nil {
			return err
		}
		b.Raw(`</main></body></html>`)
		return nil
	})
}
