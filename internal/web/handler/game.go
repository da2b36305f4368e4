package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/bot"
	"github.com/mcoot/minesweeper/internal/services/game"
	"github.com/mcoot/minesweeper/internal/services/input"
	"github.com/mcoot/minesweeper/internal/web/middleware"
	"github.com/mcoot/minesweeper/internal/web/sse"
	"github.com/mcoot/minesweeper/internal/web/templates/components"
	"github.com/mcoot/minesweeper/internal/web/templates/pages"
)

// GameHandler handles the board page and every action on it
type GameHandler struct {
	gameController game.ControllerInterface
	botService     *bot.Service
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController game.ControllerInterface, botService *bot.Service, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		hubManager:     hubManager,
		logger:         logger.With(slog.String("component", "web-game")),
	}
}

// Create starts a new game from the home page form. A preset button wins
// over the typed dimensions; typed values go through input validation, so
// blank or out-of-range entries are replaced rather than rejected.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	settings := input.Validate(r.FormValue("rows"), r.FormValue("cols"), r.FormValue("mines"))
	if preset := strings.TrimSpace(r.FormValue("preset")); preset != "" {
		var err error
		settings, err = input.FromPreset(preset)
		if err != nil {
			middleware.SetFlash(w, middleware.FlashError, "Unknown preset: "+preset)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	if _, err := h.gameController.NewGame(r.Context(), player.ID, settings); err != nil {
		h.logger.Error("failed to start game", slog.String("player_id", string(player.ID)), slog.Any("error", err))
		middleware.SetFlash(w, middleware.FlashError, "Failed to start game")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/game", http.StatusSeeOther)
}

// View renders the board page for the player's current game
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	current, err := h.gameController.CurrentGame(r.Context(), player.ID)
	if errors.Is(err, model.ErrNoActiveGame) {
		middleware.SetFlash(w, middleware.FlashInfo, "No game in progress, start one below")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.logger.Error("failed to load game", slog.String("player_id", string(player.ID)), slog.Any("error", err))
		renderError(w, r, http.StatusInternalServerError, "Failed to load your game.")
		return
	}

	render(w, r, http.StatusOK, pages.Game(pages.GameData{
		PageData: pageData(r, "Game"),
		Game:     current,
	}))
}

// Reveal uncovers a cell (left click)
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, h.gameController.Reveal)
}

// Flag toggles a flag on a cell (right click)
func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, h.gameController.Flag)
}

type cellAction func(ctx context.Context, playerID model.PlayerID, pos model.Position) (*game.ActionResult, error)

// applyAction runs a cell action and answers with the refreshed game panel.
// Other pages open on the same game receive it through the event stream.
func (h *GameHandler) applyAction(w http.ResponseWriter, r *http.Request, action cellAction) {
	player := middleware.GetPlayer(r.Context())

	pos, ok := parsePosition(r)
	if !ok {
		http.Error(w, "row and col are required", http.StatusBadRequest)
		return
	}

	result, err := action(r.Context(), player.ID, pos)
	switch {
	case errors.Is(err, model.ErrNoActiveGame):
		redirect(w, r, "/")
		return
	case errors.Is(err, model.ErrInvalidPosition):
		http.Error(w, "Position is outside the board", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("game action failed", slog.String("player_id", string(player.ID)), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, components.GamePanel(result.Game, nil))
}

// Hint highlights the move the chosen bot strategy would make next
func (h *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	current, err := h.gameController.CurrentGame(r.Context(), player.ID)
	if errors.Is(err, model.ErrNoActiveGame) {
		redirect(w, r, "/")
		return
	}
	if err != nil {
		h.logger.Error("failed to load game", slog.String("player_id", string(player.ID)), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	move, err := h.botService.Hint(r.Context(), player.ID, r.FormValue("strategy"))
	switch {
	case errors.Is(err, model.ErrNoMoveAvailable):
		render(w, r, http.StatusOK, components.GamePanel(current, nil))
		return
	case errors.Is(err, model.ErrUnknownStrategy):
		http.Error(w, "Unknown strategy", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("hint failed", slog.String("player_id", string(player.ID)), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, components.GamePanel(current, &move))
}

// Abandon discards the current game and returns to the home page
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	err := h.gameController.Abandon(r.Context(), player.ID)
	switch {
	case errors.Is(err, model.ErrNoActiveGame):
		middleware.SetFlash(w, middleware.FlashInfo, "No game in progress")
	case err != nil:
		h.logger.Error("failed to abandon game", slog.String("player_id", string(player.ID)), slog.Any("error", err))
		middleware.SetFlash(w, middleware.FlashError, "Failed to abandon game")
	default:
		middleware.SetFlash(w, middleware.FlashInfo, "Game abandoned")
	}

	redirect(w, r, "/")
}

// Events streams board updates for every page the player has open
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	sse.ServeSSE(w, r, h.hubManager, player.ID)
}

// parsePosition reads zero-based row and col form values
func parsePosition(r *http.Request) (model.Position, bool) {
	row, err := strconv.Atoi(strings.TrimSpace(r.FormValue("row")))
	if err != nil {
		return model.Position{}, false
	}
	col, err := strconv.Atoi(strings.TrimSpace(r.FormValue("col")))
	if err != nil {
		return model.Position{}, false
	}
	return model.Position{Row: row, Col: col}, true
}
