package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/minesweeper/internal/api/apierr"
	"github.com/mcoot/minesweeper/internal/api/handler"
	"github.com/mcoot/minesweeper/internal/api/middleware"
	"github.com/mcoot/minesweeper/internal/api/response"
	"github.com/mcoot/minesweeper/internal/dependencies/clock"
	"github.com/mcoot/minesweeper/internal/services/auth"
	"github.com/mcoot/minesweeper/internal/services/bot"
	"github.com/mcoot/minesweeper/internal/services/game"
	"github.com/mcoot/minesweeper/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Clock          clock.Clock
	AuthService    *auth.Service
	StatsService   *stats.Service
	GameController *game.Controller
	BotService     *bot.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the API routes under /api/v1 on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.StatsService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, cfg.Clock)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me/stats", playerHandler.GetMyStats).Methods(http.MethodGet)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.New).Methods(http.MethodPost)
	games.HandleFunc("/current", gameHandler.Current).Methods(http.MethodGet)
	games.HandleFunc("/current", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/current/reveal", gameHandler.Reveal).Methods(http.MethodPost)
	games.HandleFunc("/current/flag", gameHandler.Flag).Methods(http.MethodPost)
	games.HandleFunc("/current/hint", gameHandler.Hint).Methods(http.MethodGet)
	games.HandleFunc("/current/autoplay", gameHandler.Autoplay).Methods(http.MethodPost)

	api.NotFoundHandler = http.HandlerFunc(notFoundHandler)
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
