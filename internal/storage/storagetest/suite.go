// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/storage"
)

// Suite runs the common storage contract. Backends embed it and set
// Storage in their own SetupTest before calling SetupContract.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// SetupContract prepares shared fields
func (s *Suite) SetupContract(store storage.Storage) {
	s.Storage = store
	s.Ctx = context.Background()
}

// SampleGame returns a small game with one flag and one revealed cell
func SampleGame(id model.GameID, playerID model.PlayerID) *model.Game {
	grid := model.NewGrid(3, 4)
	grid.SetMines([]model.Position{{Row: 0, Col: 0}, {Row: 2, Col: 3}})
	grid.Cells[0][0].IsFlagged = true
	grid.Cells[1][1].IsRevealed = true
	grid.Cells[1][1].NeighbourMineCount = 1

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &model.Game{
		ID:             id,
		PlayerID:       playerID,
		Settings:       model.Settings{Rows: 3, Cols: 4, Mines: 2},
		Grid:           grid,
		FlagsRemaining: 1,
		State:          model.GameStateOngoing,
		Moves:          2,
		CreatedAt:      created,
		UpdatedAt:      created.Add(time.Minute),
	}
}

// Player tests

func (s *Suite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     true,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	err := s.Storage.SavePlayer(s.Ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.True(retrieved.IsGuest)
	s.True(player.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, player))

	err := s.Storage.DeletePlayer(s.Ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.Storage.GetPlayer(s.Ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *Suite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now().UTC(),
	}

	err := s.Storage.SaveRegisteredPlayer(s.Ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetRegisteredPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
	s.Equal(rp.PasswordHash, retrieved.PasswordHash)
}

func (s *Suite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	s.Require().NoError(s.Storage.SaveRegisteredPlayer(s.Ctx, rp))

	retrieved, err := s.Storage.GetRegisteredPlayerByUsername(s.Ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)
}

func (s *Suite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.Storage.GetRegisteredPlayerByUsername(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	game := SampleGame("game-1", "player-1")

	err := s.Storage.SaveGame(s.Ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.PlayerID, retrieved.PlayerID)
	s.Equal(game.Settings, retrieved.Settings)
	s.Equal(game.State, retrieved.State)
	s.Equal(game.FlagsRemaining, retrieved.FlagsRemaining)
	s.Equal(game.Moves, retrieved.Moves)
	s.Equal(game.Grid.MinePositions, retrieved.Grid.MinePositions)
	s.Equal(game.Grid.Cells, retrieved.Grid.Cells)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
	s.Nil(retrieved.LossPosition)
	s.Nil(retrieved.FinishedAt)
}

func (s *Suite) TestSaveGameKeepsFinishedFields() {
	game := SampleGame("game-1", "player-1")
	game.State = model.GameStateLost
	game.LossPosition = &model.Position{Row: 2, Col: 3}
	finished := game.CreatedAt.Add(90 * time.Second)
	game.FinishedAt = &finished

	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStateLost, retrieved.State)
	s.Require().NotNil(retrieved.LossPosition)
	s.Equal(model.Position{Row: 2, Col: 3}, *retrieved.LossPosition)
	s.Require().NotNil(retrieved.FinishedAt)
	s.True(finished.Equal(*retrieved.FinishedAt))
}

func (s *Suite) TestSavedGameIsIsolatedFromCaller() {
	game := SampleGame("game-1", "player-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.Grid.Cells[2][2].IsRevealed = true

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.False(retrieved.Grid.Cells[2][2].IsRevealed)
}

func (s *Suite) TestSaveGameOverwrites() {
	game := SampleGame("game-1", "player-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.Moves = 10
	game.State = model.GameStateWon
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(10, retrieved.Moves)
	s.Equal(model.GameStateWon, retrieved.State)
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestDeleteGame() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, SampleGame("game-1", "player-1")))

	err := s.Storage.DeleteGame(s.Ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.Storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Active game tests

func (s *Suite) TestActiveGameLifecycle() {
	_, err := s.Storage.GetActiveGame(s.Ctx, "player-1")
	s.ErrorIs(err, model.ErrNoActiveGame)

	s.Require().NoError(s.Storage.SetActiveGame(s.Ctx, "player-1", "game-1"))
	gameID, err := s.Storage.GetActiveGame(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), gameID)

	// Starting another game replaces the pointer
	s.Require().NoError(s.Storage.SetActiveGame(s.Ctx, "player-1", "game-2"))
	gameID, err = s.Storage.GetActiveGame(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-2"), gameID)

	s.Require().NoError(s.Storage.ClearActiveGame(s.Ctx, "player-1"))
	_, err = s.Storage.GetActiveGame(s.Ctx, "player-1")
	s.ErrorIs(err, model.ErrNoActiveGame)
}

func (s *Suite) TestActiveGameIsPerPlayer() {
	s.Require().NoError(s.Storage.SetActiveGame(s.Ctx, "player-1", "game-1"))

	_, err := s.Storage.GetActiveGame(s.Ctx, "player-2")
	s.ErrorIs(err, model.ErrNoActiveGame)
}

// Stats tests

func (s *Suite) TestSaveAndGetStats() {
	stats := &model.PlayerStats{
		PlayerID:  "player-1",
		Played:    3,
		Won:       2,
		Lost:      1,
		BestTimes: map[string]int64{"9x9/10": 42000},
		UpdatedAt: time.Now().UTC(),
	}

	err := s.Storage.SaveStats(s.Ctx, stats)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetStats(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(3, retrieved.Played)
	s.Equal(2, retrieved.Won)
	s.Equal(1, retrieved.Lost)
	s.Equal(map[string]int64{"9x9/10": 42000}, retrieved.BestTimes)
}

func (s *Suite) TestGetStatsNotFound() {
	_, err := s.Storage.GetStats(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrStatsNotFound)
}
