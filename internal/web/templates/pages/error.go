package pages

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/web/templates"
	"github.com/mcoot/minesweeper/internal/web/templates/layout"
)

// ErrorData is the data for an error page
type ErrorData struct {
	layout.PageData
	Status  int
	Message string
}

// Error renders a full error page
func Error(data ErrorData) templ.Component {
	return layout.Base(data.PageData, templates.Func(func(_ context.Context, b *templates.Builder) error {
		b.Rawf(`<section id="error" data-status="%d"><h1>`, data.Status)
		b.Text(http.StatusText(data.Status))
		b.Raw(`</h1><p>`)
		b.Text(data.Message)
		b.Raw(`</p><p><a href="/">Return to home</a></p></section>`)
		return nil
	}))
}
