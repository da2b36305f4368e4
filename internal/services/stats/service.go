package stats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/minesweeper/internal/dependencies/clock"
	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/storage"
)

// Service keeps each player's record of finished games
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new stats Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "stats-service")),
	}
}

// GetStats returns a player's stats, or empty stats if they have none yet
func (s *Service) GetStats(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error) {
	stats, err := s.storage.GetStats(ctx, playerID)
	if errors.Is(err, model.ErrStatsNotFound) {
		return &model.PlayerStats{PlayerID: playerID, BestTimes: map[string]int64{}}, nil
	}
	return stats, err
}

// RecordResult counts a finished game. Games still in progress are ignored.
func (s *Service) RecordResult(ctx context.Context, game *model.Game) error {
	if !game.IsOver() {
		return nil
	}

	return s.update(ctx, game.PlayerID, func(stats *model.PlayerStats) {
		stats.Played++
		if game.State == model.GameStateLost {
			stats.Lost++
			return
		}

		stats.Won++
		elapsed := game.Duration(s.clock.Now()).Milliseconds()
		key := game.Settings.Key()
		if best, ok := stats.BestTimes[key]; !ok || elapsed < best {
			stats.BestTimes[key] = elapsed
			s.logger.Info("new best time",
				slog.String("player_id", string(game.PlayerID)),
				slog.String("settings", key),
				slog.Int64("elapsed_ms", elapsed),
			)
		}
	})
}

// RecordAbandoned counts a game the player walked away from mid-play
func (s *Service) RecordAbandoned(ctx context.Context, game *model.Game) error {
	if game.IsOver() || game.Moves == 0 {
		return nil
	}
	return s.update(ctx, game.PlayerID, func(stats *model.PlayerStats) {
		stats.Abandoned++
	})
}

func (s *Service) update(ctx context.Context, playerID model.PlayerID, apply func(*model.PlayerStats)) error {
	stats, err := s.GetStats(ctx, playerID)
	if err != nil {
		return err
	}
	if stats.BestTimes == nil {
		stats.BestTimes = map[string]int64{}
	}

	apply(stats)
	stats.UpdatedAt = s.clock.Now()

	return s.storage.SaveStats(ctx, stats)
}
