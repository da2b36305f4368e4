package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/game"
	"github.com/mcoot/minesweeper/internal/services/stats"
	"github.com/mcoot/minesweeper/internal/web/templates/components"
	"github.com/mcoot/minesweeper/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	gameController game.ControllerInterface
	statsService   *stats.Service
	logger         *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(gameController game.ControllerInterface, statsService *stats.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		gameController: gameController,
		statsService:   statsService,
		logger:         logger.With(slog.String("component", "web-home")),
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: pageData(r, "Home"),
		Form:     components.NewGameFormFromSettings(model.DefaultSettings()),
		Next:     r.URL.Query().Get("next"),
	}

	if player := data.Player; player != nil {
		current, err := h.gameController.CurrentGame(r.Context(), player.ID)
		if err == nil {
			data.HasActiveGame = !current.IsOver()
			data.Form = components.NewGameFormFromSettings(current.Settings)
		}

		playerStats, err := h.statsService.GetStats(r.Context(), player.ID)
		if err != nil {
			h.logger.Warn("failed to load stats", slog.String("player_id", string(player.ID)), slog.Any("error", err))
		} else {
			data.Stats = playerStats
		}
	}

	render(w, r, http.StatusOK, pages.Home(data))
}
