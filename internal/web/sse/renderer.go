package sse

import (
	"context"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/web/templates"
	"github.com/mcoot/minesweeper/internal/web/templates/components"
)

// BoardUpdateEvent carries a freshly rendered game panel
const BoardUpdateEvent = "board-update"

// EventData is one SSE event ready to send
type EventData struct {
	EventName string
	HTML      string
}

// Renderer converts game events to HTML fragments for SSE
type Renderer struct{}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderGameEvent renders the game panel as it stands after the event
func (r *Renderer) RenderGameEvent(ctx context.Context, event model.Event) ([]EventData, error) {
	panel := components.NoGamePanel()
	if event.Type != model.EventGameAbandoned && event.Game != nil {
		panel = components.GamePanel(event.Game, nil)
	}

	html, err := templates.RenderString(ctx, panel)
	if err != nil {
		return nil, err
	}
	return []EventData{{EventName: BoardUpdateEvent, HTML: html}}, nil
}
