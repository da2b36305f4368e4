package components

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/web/templates"
)

// NewGameFormData holds the values echoed back into the new game form
type NewGameFormData struct {
	Rows  string
	Cols  string
	Mines string
}

// NewGameFormFromSettings echoes validated settings back as form values
func NewGameFormFromSettings(s model.Settings) NewGameFormData {
	return NewGameFormData{
		Rows:  itoa(s.Rows),
		Cols:  itoa(s.Cols),
		Mines: itoa(s.Mines),
	}
}

// NewGameForm renders the rows, cols and mines inputs plus preset buttons
func NewGameForm(data NewGameFormData) templ.Component {
	return templates.Func(func(_ context.Context, b *templates.Builder) error {
		b.Raw(`<form id="new-game-form" class="stacked" method="post" action="/game">`)
		numberInput(b, "rows", "Rows", data.Rows, model.MaxDimension)
		numberInput(b, "cols", "Columns", data.Cols, model.MaxDimension)
		numberInput(b, "mines", "Mines", data.Mines, model.MaxDimension*model.MaxDimension)
		b.Raw(`<div class="controls"><button type="submit">Start game</button>`)
		for _, name := range model.PresetNames() {
			s, _ := model.PresetSettings(name)
			b.Rawf(`<button type="submit" name="preset" value="%s" title="%dx%d, %d mines">%s</button>`,
				name, s.Rows, s.Cols, s.Mines, presetLabel(name))
		}
		b.Raw(`</div></form>`)
		return nil
	})
}

func numberInput(b *templates.Builder, name, label, value string, maxValue int) {
	b.Rawf(`<label for="%s">%s</label>`, name, label)
	b.Rawf(`<input type="number" id="%s" name="%s" min="%d" max="%d" value="%s">`,
		name, name, model.MinDimension, maxValue, templates.Escape(value))
}

func presetLabel(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// GuestForm renders the quick-start guest form
func GuestForm(next string) templ.Component {
	return templates.Func(func(_ context.Context, b *templates.Builder) error {
		b.Raw(`<form id="guest-form" class="stacked" method="post" action="/auth/guest">`)
		b.Raw(`<label for="display_name">Display name</label>`)
		b.Raw(`<input type="text" id="display_name" name="display_name" maxlength="32" placeholder="Guest">`)
		if next != "" {
			b.Rawf(`<input type="hidden" name="next" value="%s">`, templates.Escape(next))
		}
		b.Raw(`<button type="submit">Play as guest</button></form>`)
		return nil
	})
}
