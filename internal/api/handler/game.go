package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/minesweeper/internal/api/middleware"
	"github.com/mcoot/minesweeper/internal/api/request"
	"github.com/mcoot/minesweeper/internal/api/response"
	"github.com/mcoot/minesweeper/internal/dependencies/clock"
	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/bot"
	"github.com/mcoot/minesweeper/internal/services/game"
	"github.com/mcoot/minesweeper/internal/services/input"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	botService     *bot.Service
	clock          clock.Clock
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, botService *bot.Service, clk clock.Clock) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		clock:          clk,
	}
}

// New handles POST /api/v1/games
func (h *GameHandler) New(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.NewGameRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	settings, err := settingsFromRequest(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.NewGame(r.Context(), player.ID, settings)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.GameFromModel(g, h.clock.Now()))
}

// Current handles GET /api/v1/games/current
func (h *GameHandler) Current(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.CurrentGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, h.clock.Now()))
}

// Abandon handles DELETE /api/v1/games/current
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.gameController.Abandon(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Reveal handles POST /api/v1/games/current/reveal
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	pos, err := decodePosition(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.gameController.Reveal(r.Context(), player.ID, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponseFromResult(result, h.clock.Now()))
}

// Flag handles POST /api/v1/games/current/flag
func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	pos, err := decodePosition(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.gameController.Flag(r.Context(), player.ID, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponseFromResult(result, h.clock.Now()))
}

// Hint handles GET /api/v1/games/current/hint
func (h *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	strategy := strategyOrDefault(r.URL.Query().Get("strategy"))

	move, err := h.botService.Hint(r.Context(), player.ID, strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintResponse{
		Strategy: strategy,
		Move:     response.MoveFromModel(move),
	})
}

// Autoplay handles POST /api/v1/games/current/autoplay
func (h *GameHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.AutoplayRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.MaxMoves < 0 {
		WriteError(w, NewInvalidRequestError("max_moves must not be negative"))
		return
	}
	strategy := strategyOrDefault(req.Strategy)

	result, err := h.botService.Autoplay(r.Context(), player.ID, strategy, req.MaxMoves)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutoplayResponseFromResult(strategy, result, h.clock.Now()))
}

// settingsFromRequest resolves a preset, or validates raw dimensions
func settingsFromRequest(req request.NewGameRequest) (model.Settings, error) {
	if req.Preset != "" {
		return input.FromPreset(req.Preset)
	}
	return input.Validate(string(req.Rows), string(req.Cols), string(req.Mines)), nil
}

func decodePosition(r *http.Request) (model.Position, error) {
	var req request.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return model.Position{}, NewInvalidRequestError("invalid request body")
	}
	if req.Row == nil || req.Col == nil {
		return model.Position{}, NewInvalidRequestError("row and col are required")
	}
	return model.Position{Row: *req.Row, Col: *req.Col}, nil
}

// decodeOptional decodes a JSON body, treating an empty body as {}
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func strategyOrDefault(strategy string) string {
	if strategy == "" {
		return model.BotStrategyDeduce
	}
	return strategy
}
