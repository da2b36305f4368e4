package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/storage"
	"github.com/mcoot/minesweeper/internal/storage/codec"
)

//go:embed schema.sql
var ddl string

// Timestamps are stored as RFC3339 text
const timeLayout = time.RFC3339Nano

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens the database file and creates any missing tables
func New(cfg Config) (*Storage, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", cfg.Path, cfg.BusyTimeoutMS)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite3 allows one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
	}

	s := &Storage{db: db}
	if err := s.InitializeTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// InitializeTables runs the schema; safe to call on an existing database
func (s *Storage) InitializeTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("initialize tables: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, display_name, is_guest, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET display_name = excluded.display_name, is_guest = excluded.is_guest`,
		string(player.ID), player.DisplayName, player.IsGuest, formatTime(player.CreatedAt),
	)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var (
		player    model.Player
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, is_guest, created_at FROM players WHERE id = ?`, string(id),
	).Scan(&player.ID, &player.DisplayName, &player.IsGuest, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	if player.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, string(id))
	return err
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registered_players (player_id, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (player_id) DO UPDATE SET password_hash = excluded.password_hash, updated_at = excluded.updated_at`,
		string(rp.PlayerID), rp.Username, rp.PasswordHash, formatTime(rp.CreatedAt), formatTime(rp.UpdatedAt),
	)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	return s.queryRegisteredPlayer(ctx, `WHERE player_id = ?`, string(playerID))
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	return s.queryRegisteredPlayer(ctx, `WHERE username = ?`, username)
}

func (s *Storage) queryRegisteredPlayer(ctx context.Context, where string, arg any) (*model.RegisteredPlayer, error) {
	var (
		rp                   model.RegisteredPlayer
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT player_id, username, password_hash, created_at, updated_at FROM registered_players `+where, arg,
	).Scan(&rp.PlayerID, &rp.Username, &rp.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	if rp.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if rp.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &rp, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := codec.EncodeGame(game)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, player_id, state, data, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET state = excluded.state, data = excluded.data, updated_at = excluded.updated_at`,
		string(game.ID), string(game.PlayerID), string(game.State), data, formatTime(game.UpdatedAt),
	)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM games WHERE id = ?`, string(id)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return codec.DecodeGame(data)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, string(id))
	return err
}

// Active game operations

func (s *Storage) SetActiveGame(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO active_games (player_id, game_id) VALUES (?, ?)
		ON CONFLICT (player_id) DO UPDATE SET game_id = excluded.game_id`,
		string(playerID), string(gameID),
	)
	return err
}

func (s *Storage) GetActiveGame(ctx context.Context, playerID model.PlayerID) (model.GameID, error) {
	var gameID string
	err := s.db.QueryRowContext(ctx,
		`SELECT game_id FROM active_games WHERE player_id = ?`, string(playerID),
	).Scan(&gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrNoActiveGame
		}
		return "", err
	}
	return model.GameID(gameID), nil
}

func (s *Storage) ClearActiveGame(ctx context.Context, playerID model.PlayerID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM active_games WHERE player_id = ?`, string(playerID))
	return err
}

// Stats operations

func (s *Storage) SaveStats(ctx context.Context, stats *model.PlayerStats) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO player_stats (player_id, played, won, lost, abandoned, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (player_id) DO UPDATE SET
			played = excluded.played, won = excluded.won, lost = excluded.lost,
			abandoned = excluded.abandoned, updated_at = excluded.updated_at`,
		string(stats.PlayerID), stats.Played, stats.Won, stats.Lost, stats.Abandoned, formatTime(stats.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_best_times WHERE player_id = ?`, string(stats.PlayerID)); err != nil {
		return err
	}
	for key, ms := range stats.BestTimes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_best_times (player_id, settings_key, best_ms) VALUES (?, ?, ?)`,
			string(stats.PlayerID), key, ms,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Storage) GetStats(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error) {
	stats := &model.PlayerStats{
		PlayerID:  playerID,
		BestTimes: make(map[string]int64),
	}
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT played, won, lost, abandoned, updated_at FROM player_stats WHERE player_id = ?`, string(playerID),
	).Scan(&stats.Played, &stats.Won, &stats.Lost, &stats.Abandoned, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrStatsNotFound
		}
		return nil, err
	}
	if stats.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT settings_key, best_ms FROM player_best_times WHERE player_id = ?`, string(playerID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			key string
			ms  int64
		)
		if err := rows.Scan(&key, &ms); err != nil {
			return nil, err
		}
		stats.BestTimes[key] = ms
	}
	return stats, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", value, err)
	}
	return t, nil
}
