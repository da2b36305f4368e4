package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/minesweeper/internal/dependencies/clock"
	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/services/auth"
	"github.com/mcoot/minesweeper/internal/services/board"
	"github.com/mcoot/minesweeper/internal/services/bot"
	"github.com/mcoot/minesweeper/internal/services/game"
	"github.com/mcoot/minesweeper/internal/services/stats"
	"github.com/mcoot/minesweeper/internal/storage"
	"github.com/mcoot/minesweeper/internal/storage/memory"
	redisstorage "github.com/mcoot/minesweeper/internal/storage/redis"
	sqlitestorage "github.com/mcoot/minesweeper/internal/storage/sqlite"
	"github.com/mcoot/minesweeper/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService   *board.Service
	StatsService   *stats.Service
	GameController *game.Controller
	BotService     *bot.Service
	AuthService    *auth.Service

	// Live updates
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds database settings (required if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closer, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("storage initialized", slog.String("type", storageTypeOrDefault(cfg.StorageType)))

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, clock.New(), random.New(), authCfg, logger)
	app.closer = closer
	return app, nil
}

func storageTypeOrDefault(storageType string) string {
	if storageType == "" {
		return StorageTypeMemory
	}
	return storageType
}

func newStorage(cfg Config) (storage.Storage, io.Closer, error) {
	switch storageTypeOrDefault(cfg.StorageType) {
	case StorageTypeMemory:
		return memory.New(), nil, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return store, store, nil
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		store, err := sqlitestorage.New(*cfg.SQLiteConfig)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	boardService := board.New(rnd, logger)
	statsService := stats.New(store, clk, logger)
	gameController := game.NewController(store, boardService, statsService, clk, rnd, broadcaster, logger)
	botService := bot.NewService(gameController, bot.DefaultStrategies(rnd), logger)
	authService := auth.New(store, clk, authCfg, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		BoardService:   boardService,
		StatsService:   statsService,
		GameController: gameController,
		BotService:     botService,
		AuthService:    authService,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}

// Close stops live updates and releases the storage backend
func (a *App) Close() error {
	a.HubManager.Close()
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
