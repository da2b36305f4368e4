package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/mcoot/minesweeper/internal/api"
	"github.com/mcoot/minesweeper/internal/factory"
	redisstorage "github.com/mcoot/minesweeper/internal/storage/redis"
	sqlitestorage "github.com/mcoot/minesweeper/internal/storage/sqlite"
	"github.com/mcoot/minesweeper/internal/web"
)

const (
	sessionCleanupInterval = 10 * time.Minute
	hubCleanupInterval     = time.Minute
)

var errRedisURLRequired = errors.New("REDIS_URL required when STORAGE_TYPE=redis")

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	cfg, err := factoryConfig(logger)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	// API and web UI share one router; the API claims /api/v1 first
	router := mux.NewRouter()
	api.Mount(router, api.RouterConfig{
		Logger:         logger,
		Clock:          app.Clock,
		AuthService:    app.AuthService,
		StatsService:   app.StatsService,
		GameController: app.GameController,
		BotService:     app.BotService,
	})
	web.Mount(router, web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		StatsService:   app.StatsService,
		GameController: app.GameController,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
		StaticDir:      findStaticDir(),
	})

	serverConfig := api.DefaultServerConfig()
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.AuthService.RunSessionCleanup(ctx, sessionCleanupInterval)
	go app.HubManager.RunCleanup(ctx, hubCleanupInterval)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("application ready", slog.String("storage", cfg.StorageType))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return
		}
	}

	logger.Info("server stopped")
}

// factoryConfig builds the factory config from the environment
func factoryConfig(logger *slog.Logger) (factory.Config, error) {
	cfg := factory.Config{
		Logger:      logger,
		StorageType: strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_TYPE"))),
	}
	if cfg.StorageType == "" {
		cfg.StorageType = factory.StorageTypeMemory
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return cfg, errRedisURLRequired
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if path := os.Getenv("SQLITE_PATH"); path != "" {
			sqliteCfg.Path = path
		}
		cfg.SQLiteConfig = &sqliteCfg
	}

	return cfg, nil
}

// parseLevel reads a slog level name, defaulting to info
func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// findStaticDir looks for an optional static files directory. Styles are
// inlined in the layout, so an empty result just skips the /static/ route.
func findStaticDir() string {
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		return dir
	}

	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return ""
}
