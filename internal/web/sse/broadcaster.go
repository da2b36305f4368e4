package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/game"
)

// Broadcaster pushes game changes to every open page of the player
type Broadcaster struct {
	hubManager *HubManager
	renderer   *Renderer
	logger     *slog.Logger
}

var _ game.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		renderer:   NewRenderer(),
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify renders the event and sends it to the player's hub, if any pages
// are listening
func (b *Broadcaster) Notify(ctx context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.PlayerID)
	if hub == nil {
		return
	}

	events, err := b.renderer.RenderGameEvent(ctx, event)
	if err != nil {
		b.logger.Error("sse failed to render game event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}

	for _, e := range events {
		hub.BroadcastEvent(e.EventName, e.HTML)
	}
}
