package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/storage"
	"github.com/mcoot/minesweeper/internal/storage/codec"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	// Look up player ID from username index
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := codec.EncodeGame(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	return codec.DecodeGame(data)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}

// Active game operations

func (s *Storage) SetActiveGame(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error {
	return s.client.Set(ctx, activeGameKey(playerID), string(gameID), s.cfg.GameTTL).Err()
}

func (s *Storage) GetActiveGame(ctx context.Context, playerID model.PlayerID) (model.GameID, error) {
	gameID, err := s.client.Get(ctx, activeGameKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNoActiveGame
		}
		return "", err
	}
	return model.GameID(gameID), nil
}

func (s *Storage) ClearActiveGame(ctx context.Context, playerID model.PlayerID) error {
	return s.client.Del(ctx, activeGameKey(playerID)).Err()
}

// Stats operations

// Stats are a hash with one best:<settings> field per board shape
const (
	statsFieldPlayed    = "played"
	statsFieldWon       = "won"
	statsFieldLost      = "lost"
	statsFieldAbandoned = "abandoned"
	statsFieldUpdatedAt = "updated_at"
	statsBestTimePrefix = "best:"
)

func (s *Storage) SaveStats(ctx context.Context, stats *model.PlayerStats) error {
	fields := map[string]any{
		statsFieldPlayed:    stats.Played,
		statsFieldWon:       stats.Won,
		statsFieldLost:      stats.Lost,
		statsFieldAbandoned: stats.Abandoned,
		statsFieldUpdatedAt: stats.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	for key, ms := range stats.BestTimes {
		fields[statsBestTimePrefix+key] = ms
	}

	key := statsKey(stats.PlayerID)

	// Replace the whole hash
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	if s.cfg.StatsTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.StatsTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStats(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error) {
	fields, err := s.client.HGetAll(ctx, statsKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrStatsNotFound
	}

	stats := &model.PlayerStats{
		PlayerID:  playerID,
		BestTimes: make(map[string]int64),
	}
	for field, value := range fields {
		switch {
		case field == statsFieldPlayed:
			stats.Played, err = strconv.Atoi(value)
		case field == statsFieldWon:
			stats.Won, err = strconv.Atoi(value)
		case field == statsFieldLost:
			stats.Lost, err = strconv.Atoi(value)
		case field == statsFieldAbandoned:
			stats.Abandoned, err = strconv.Atoi(value)
		case field == statsFieldUpdatedAt:
			stats.UpdatedAt, err = time.Parse(time.RFC3339Nano, value)
		case strings.HasPrefix(field, statsBestTimePrefix):
			var ms int64
			ms, err = strconv.ParseInt(value, 10, 64)
			stats.BestTimes[strings.TrimPrefix(field, statsBestTimePrefix)] = ms
		}
		if err != nil {
			return nil, fmt.Errorf("stats field %s: %w", field, err)
		}
	}
	return stats, nil
}
