package storage

import (
	"context"

	"github.com/mcoot/minesweeper/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Active game operations (at most one per player)
	SetActiveGame(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error
	GetActiveGame(ctx context.Context, playerID model.PlayerID) (model.GameID, error)
	ClearActiveGame(ctx context.Context, playerID model.PlayerID) error

	// Stats operations
	SaveStats(ctx context.Context, stats *model.PlayerStats) error
	GetStats(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error)
}
