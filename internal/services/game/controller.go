package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/minesweeper/internal/dependencies/clock"
	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/board"
	"github.com/mcoot/minesweeper/internal/services/input"
	"github.com/mcoot/minesweeper/internal/services/stats"
	"github.com/mcoot/minesweeper/internal/storage"
)

const (
	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	gameIDLength   = 12
)

// Notifier receives an event after every state-changing action
type Notifier interface {
	Notify(ctx context.Context, event model.Event)
}

// NopNotifier discards events
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(context.Context, model.Event) {}

// ActionResult describes the effect of a reveal or flag action
type ActionResult struct {
	Game    *model.Game
	Outcome model.Outcome
	// Positions are the cells whose state changed, in the order they changed
	Positions []model.Position
}

// Changed returns true if the action altered the game
func (r *ActionResult) Changed() bool {
	return r.Outcome != model.OutcomeNone
}

// Controller runs the game state machine for each player's active game
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	statsService *stats.Service
	clock        clock.Clock
	random       random.Random
	notifier     Notifier
	logger       *slog.Logger
	locks        *playerLocks
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	statsService *stats.Service,
	clock clock.Clock,
	random random.Random,
	notifier Notifier,
	logger *slog.Logger,
) *Controller {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Controller{
		storage:      storage,
		boardService: boardService,
		statsService: statsService,
		clock:        clock,
		random:       random,
		notifier:     notifier,
		logger:       logger.With(slog.String("component", "game-controller")),
		locks:        newPlayerLocks(),
	}
}

// NewGame discards the player's current game, if any, and starts a fresh one.
// Settings are clamped to playable bounds.
func (c *Controller) NewGame(ctx context.Context, playerID model.PlayerID, settings model.Settings) (*model.Game, error) {
	unlock := c.locks.lock(playerID)
	defer unlock()

	settings = input.Clamp(settings)

	if err := c.discardCurrent(ctx, playerID); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:             model.GameID(c.random.String(gameIDLength, gameIDAlphabet)),
		PlayerID:       playerID,
		Settings:       settings,
		Grid:           c.boardService.CreateGrid(settings.Rows, settings.Cols, settings.Mines),
		FlagsRemaining: settings.Mines,
		State:          model.GameStateOngoing,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if err := c.storage.SetActiveGame(ctx, playerID, game.ID); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
		slog.Int("rows", settings.Rows),
		slog.Int("cols", settings.Cols),
		slog.Int("mines", settings.Mines),
	)

	c.notify(ctx, model.EventGameStarted, game, nil)

	return game, nil
}

// CurrentGame returns the player's active game
func (c *Controller) CurrentGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	gameID, err := c.storage.GetActiveGame(ctx, playerID)
	if err != nil {
		return nil, err
	}
	game, err := c.storage.GetGame(ctx, gameID)
	if errors.Is(err, model.ErrGameNotFound) {
		// Pointer outlived the game
		return nil, model.ErrNoActiveGame
	}
	return game, err
}

// Reveal handles the primary action on a cell. It does nothing if the game
// is over or the cell is already revealed or flagged. Hitting a mine uncovers
// every mine and loses the game; otherwise the reveal may flood fill and win.
func (c *Controller) Reveal(ctx context.Context, playerID model.PlayerID, pos model.Position) (*ActionResult, error) {
	unlock := c.locks.lock(playerID)
	defer unlock()

	game, err := c.CurrentGame(ctx, playerID)
	if err != nil {
		return nil, err
	}
	cell := game.Grid.Cell(pos)
	if cell == nil {
		return nil, model.ErrInvalidPosition
	}

	result := &ActionResult{Game: game, Outcome: model.OutcomeNone}
	if game.IsOver() || cell.IsRevealed || cell.IsFlagged {
		return result, nil
	}

	if cell.IsMine {
		result.Positions = board.RevealAllMines(game.Grid)
		result.Outcome = model.OutcomeLost
		game.State = model.GameStateLost
		game.LossPosition = &pos
	} else {
		result.Positions = board.Reveal(game.Grid, pos)
		result.Outcome = model.OutcomeRevealed
		c.checkVictory(game, result)
	}

	if err := c.commit(ctx, game, result); err != nil {
		return nil, err
	}

	c.logger.Debug("cell revealed",
		slog.String("game_id", string(game.ID)),
		slog.Int("row", pos.Row),
		slog.Int("col", pos.Col),
		slog.Int("revealed", len(result.Positions)),
		slog.String("outcome", string(result.Outcome)),
	)

	return result, nil
}

// Flag handles the secondary action on a cell: flag a hidden cell while
// flags remain, or unflag a flagged one. Revealed cells are left alone.
func (c *Controller) Flag(ctx context.Context, playerID model.PlayerID, pos model.Position) (*ActionResult, error) {
	unlock := c.locks.lock(playerID)
	defer unlock()

	game, err := c.CurrentGame(ctx, playerID)
	if err != nil {
		return nil, err
	}
	cell := game.Grid.Cell(pos)
	if cell == nil {
		return nil, model.ErrInvalidPosition
	}

	result := &ActionResult{Game: game, Outcome: model.OutcomeNone}
	if game.IsOver() {
		return result, nil
	}

	switch {
	case cell.IsFlagged:
		cell.IsFlagged = false
		game.FlagsRemaining++
		result.Outcome = model.OutcomeUnflagged
	case !cell.IsRevealed && game.FlagsRemaining > 0:
		cell.IsFlagged = true
		game.FlagsRemaining--
		result.Outcome = model.OutcomeFlagged
	default:
		return result, nil
	}
	result.Positions = []model.Position{pos}
	c.checkVictory(game, result)

	if err := c.commit(ctx, game, result); err != nil {
		return nil, err
	}

	return result, nil
}

// Abandon throws away the player's current game
func (c *Controller) Abandon(ctx context.Context, playerID model.PlayerID) error {
	unlock := c.locks.lock(playerID)
	defer unlock()

	game, err := c.CurrentGame(ctx, playerID)
	if err != nil {
		return err
	}
	if err := c.discardCurrent(ctx, playerID); err != nil {
		return err
	}

	c.logger.Info("game abandoned",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
	)
	c.notify(ctx, model.EventGameAbandoned, game, nil)
	return nil
}

// checkVictory ends the game as won if every mine is flagged and every
// safe cell revealed
func (c *Controller) checkVictory(game *model.Game, result *ActionResult) {
	if board.IsCleared(game.Grid) {
		game.State = model.GameStateWon
		result.Outcome = model.OutcomeWon
	}
}

// commit persists a changed game, records finished games and notifies
func (c *Controller) commit(ctx context.Context, game *model.Game, result *ActionResult) error {
	now := c.clock.Now()
	game.Moves++
	game.UpdatedAt = now
	if game.IsOver() {
		game.FinishedAt = &now
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	if game.IsOver() {
		c.logger.Info("game finished",
			slog.String("game_id", string(game.ID)),
			slog.String("player_id", string(game.PlayerID)),
			slog.String("outcome", string(result.Outcome)),
			slog.Int("moves", game.Moves),
		)
		if err := c.statsService.RecordResult(ctx, game); err != nil {
			// The game itself is saved; a missed stat is not worth failing the move
			c.logger.Error("failed to record result",
				slog.String("game_id", string(game.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	if eventType, ok := model.EventTypeForOutcome(result.Outcome); ok {
		c.notify(ctx, eventType, game, result.Positions)
	}
	return nil
}

// discardCurrent removes the player's current game, counting it as
// abandoned if it was left mid-play
func (c *Controller) discardCurrent(ctx context.Context, playerID model.PlayerID) error {
	previous, err := c.CurrentGame(ctx, playerID)
	if errors.Is(err, model.ErrNoActiveGame) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.statsService.RecordAbandoned(ctx, previous); err != nil {
		c.logger.Error("failed to record abandoned game",
			slog.String("game_id", string(previous.ID)),
			slog.String("error", err.Error()),
		)
	}
	if err := c.storage.DeleteGame(ctx, previous.ID); err != nil {
		return err
	}
	return c.storage.ClearActiveGame(ctx, playerID)
}

func (c *Controller) notify(ctx context.Context, eventType model.EventType, game *model.Game, positions []model.Position) {
	c.notifier.Notify(ctx, model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    game.ID,
		PlayerID:  game.PlayerID,
		Game:      game.Clone(),
		Positions: positions,
	})
}

// Interface for dependency injection
type ControllerInterface interface {
	NewGame(ctx context.Context, playerID model.PlayerID, settings model.Settings) (*model.Game, error)
	CurrentGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error)
	Reveal(ctx context.Context, playerID model.PlayerID, pos model.Position) (*ActionResult, error)
	Flag(ctx context.Context, playerID model.PlayerID, pos model.Position) (*ActionResult, error)
	Abandon(ctx context.Context, playerID model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)
