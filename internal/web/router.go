package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/minesweeper/internal/services/auth"
	"github.com/mcoot/minesweeper/internal/services/bot"
	"github.com/mcoot/minesweeper/internal/services/game"
	"github.com/mcoot/minesweeper/internal/services/stats"
	"github.com/mcoot/minesweeper/internal/web/handler"
	"github.com/mcoot/minesweeper/internal/web/middleware"
	"github.com/mcoot/minesweeper/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	StatsService   *stats.Service
	GameController game.ControllerInterface
	BotService     *bot.Service
	HubManager     *sse.HubManager
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the web routes on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.GameController, cfg.StatsService, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, hubManager, cfg.Logger)

	site := r.NewRoute().Subrouter()
	site.Use(recoveryMiddleware)
	site.Use(loggingMiddleware)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		site.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing player info in nav)
	public := site.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/auth/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	public.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require auth)
	protected := site.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/game", gameHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/game", gameHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/game/reveal", gameHandler.Reveal).Methods(http.MethodPost)
	protected.HandleFunc("/game/flag", gameHandler.Flag).Methods(http.MethodPost)
	protected.HandleFunc("/game/hint", gameHandler.Hint).Methods(http.MethodPost)
	protected.HandleFunc("/game/abandon", gameHandler.Abandon).Methods(http.MethodPost)
	protected.HandleFunc("/game/events", gameHandler.Events).Methods(http.MethodGet)

	r.NotFoundHandler = recoveryMiddleware(loggingMiddleware(flashMiddleware(optionalAuthMiddleware(http.HandlerFunc(handler.NotFound)))))
}
