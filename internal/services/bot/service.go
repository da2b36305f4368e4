package bot

import (
	"context"
	"log/slog"

	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/game"
)

// MaxBotIterations caps the number of moves a single Autoplay call applies
const MaxBotIterations = 1000

// AutoplayResult lists the moves applied and the game after the last one
type AutoplayResult struct {
	Moves []model.Move
	Game  *model.Game
}

// Service suggests and plays moves on a player's current game
type Service struct {
	gameController game.ControllerInterface
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(gameController game.ControllerInterface, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// DefaultStrategies returns every strategy in model.ValidBotStrategies
func DefaultStrategies(rnd random.Random) map[string]Strategy {
	randomStrategy := NewRandomStrategy(rnd)
	return map[string]Strategy{
		model.BotStrategyRandom: randomStrategy,
		model.BotStrategyDeduce: NewDeduceStrategy(randomStrategy),
	}
}

// Hint suggests a move for the player's current game without applying it.
// An empty strategy name means deduce.
func (s *Service) Hint(ctx context.Context, playerID model.PlayerID, strategy string) (model.Move, error) {
	st, err := s.strategy(strategy)
	if err != nil {
		return model.Move{}, err
	}

	g, err := s.gameController.CurrentGame(ctx, playerID)
	if err != nil {
		return model.Move{}, err
	}
	if g.IsOver() {
		return model.Move{}, model.ErrNoMoveAvailable
	}

	move, ok := st.ChooseMove(g)
	if !ok {
		return model.Move{}, model.ErrNoMoveAvailable
	}
	return move, nil
}

// Autoplay applies strategy moves to the player's current game until it
// ends, no move remains, or maxMoves have been made. A maxMoves outside
// (0, MaxBotIterations] means MaxBotIterations.
func (s *Service) Autoplay(ctx context.Context, playerID model.PlayerID, strategy string, maxMoves int) (*AutoplayResult, error) {
	st, err := s.strategy(strategy)
	if err != nil {
		return nil, err
	}
	if maxMoves <= 0 || maxMoves > MaxBotIterations {
		maxMoves = MaxBotIterations
	}

	g, err := s.gameController.CurrentGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	result := &AutoplayResult{Game: g}
	for len(result.Moves) < maxMoves && !g.IsOver() {
		move, ok := st.ChooseMove(g)
		if !ok {
			break
		}

		action, err := s.apply(ctx, playerID, move)
		if err != nil {
			return result, err
		}
		if !action.Changed() {
			// Strategy proposed a move the game refused
			break
		}

		g = action.Game
		result.Game = g
		result.Moves = append(result.Moves, move)
	}

	s.logger.Info("autoplay finished",
		slog.String("player_id", string(playerID)),
		slog.String("game_id", string(g.ID)),
		slog.Int("moves", len(result.Moves)),
		slog.String("state", string(g.State)),
	)

	return result, nil
}

func (s *Service) apply(ctx context.Context, playerID model.PlayerID, move model.Move) (*game.ActionResult, error) {
	if move.Kind == model.MoveFlag {
		return s.gameController.Flag(ctx, playerID, move.Position)
	}
	return s.gameController.Reveal(ctx, playerID, move.Position)
}

func (s *Service) strategy(name string) (Strategy, error) {
	if name == "" {
		name = model.BotStrategyDeduce
	}
	st, ok := s.strategies[name]
	if !ok {
		return nil, model.ErrUnknownStrategy
	}
	return st, nil
}
