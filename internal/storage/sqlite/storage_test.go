package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	path    string
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "minesweeper.db")

	cfg := DefaultConfig()
	cfg.Path = s.path

	store, err := New(cfg)
	s.Require().NoError(err)
	s.storage = store
	s.SetupContract(s.storage)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestDataSurvivesReopen() {
	game := storagetest.SampleGame("game-1", "player-1")
	s.Require().NoError(s.storage.SaveGame(s.Ctx, game))
	s.Require().NoError(s.storage.SetActiveGame(s.Ctx, "player-1", "game-1"))
	s.Require().NoError(s.storage.Close())

	reopened, err := New(Config{Path: s.path, BusyTimeoutMS: 1000})
	s.Require().NoError(err)
	s.storage = reopened

	gameID, err := reopened.GetActiveGame(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), gameID)

	retrieved, err := reopened.GetGame(s.Ctx, gameID)
	s.Require().NoError(err)
	s.Equal(game.Grid.Cells, retrieved.Grid.Cells)
}

func (s *StorageSuite) TestUsernameIsUnique() {
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.Ctx, &model.RegisteredPlayer{
		PlayerID: "player-1", Username: "alice", PasswordHash: "a",
	}))

	err := s.storage.SaveRegisteredPlayer(s.Ctx, &model.RegisteredPlayer{
		PlayerID: "player-2", Username: "alice", PasswordHash: "b",
	})
	s.Error(err)
}

func TestInitializeTablesIsRepeatable(t *testing.T) {
	store, err := New(Config{Path: filepath.Join(t.TempDir(), "repeat.db")})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.InitializeTables(t.Context()))
}
