package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.GameTTL = time.Hour
	cfg.StatsTTL = 48 * time.Hour

	s.storage = NewWithClient(client, cfg)
	s.SetupContract(s.storage)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guestPlayer := &model.Player{
		ID:      "guest-1",
		IsGuest: true,
	}
	registeredPlayer := &model.Player{
		ID:      "registered-1",
		IsGuest: false,
	}

	s.Require().NoError(s.storage.SavePlayer(s.Ctx, guestPlayer))
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, registeredPlayer))

	guestTTL := s.mini.TTL(playerKey(guestPlayer.ID))
	registeredTTL := s.mini.TTL(playerKey(registeredPlayer.ID))

	s.Positive(guestTTL, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

func (s *StorageSuite) TestGameAndActiveGameTTL() {
	game := storagetest.SampleGame("game-1", "player-1")
	s.Require().NoError(s.storage.SaveGame(s.Ctx, game))
	s.Require().NoError(s.storage.SetActiveGame(s.Ctx, "player-1", "game-1"))

	s.Equal(time.Hour, s.mini.TTL(gameKey("game-1")))
	s.Equal(time.Hour, s.mini.TTL(activeGameKey("player-1")))
}

func (s *StorageSuite) TestGameStoredCompactly() {
	game := storagetest.SampleGame("game-1", "player-1")
	s.Require().NoError(s.storage.SaveGame(s.Ctx, game))

	raw, err := s.mini.Get(gameKey("game-1"))
	s.Require().NoError(err)
	s.Contains(raw, `"cells":["F###","#1##","####"]`)
}

func (s *StorageSuite) TestStatsStoredAsHash() {
	stats := &model.PlayerStats{
		PlayerID:  "player-1",
		Played:    4,
		Won:       1,
		BestTimes: map[string]int64{"9x9/10": 61000},
		UpdatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.SaveStats(s.Ctx, stats))

	s.Equal("4", s.mini.HGet(statsKey("player-1"), "played"))
	s.Equal("61000", s.mini.HGet(statsKey("player-1"), "best:9x9/10"))
	s.Equal(48*time.Hour, s.mini.TTL(statsKey("player-1")))

	retrieved, err := s.storage.GetStats(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.True(stats.UpdatedAt.Equal(retrieved.UpdatedAt))
}

func (s *StorageSuite) TestSaveStatsDropsRemovedBestTimes() {
	stats := &model.PlayerStats{
		PlayerID:  "player-1",
		BestTimes: map[string]int64{"9x9/10": 61000, "16x16/40": 200000},
	}
	s.Require().NoError(s.storage.SaveStats(s.Ctx, stats))

	stats.BestTimes = map[string]int64{"9x9/10": 50000}
	s.Require().NoError(s.storage.SaveStats(s.Ctx, stats))

	retrieved, err := s.storage.GetStats(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(map[string]int64{"9x9/10": 50000}, retrieved.BestTimes)
}

func (s *StorageSuite) TestGetStatsRejectsCorruptCounter() {
	s.mini.HSet(statsKey("player-1"), "played", "many")

	_, err := s.storage.GetStats(s.Ctx, "player-1")
	s.Error(err)
}
