package redis

import (
	"fmt"

	"github.com/mcoot/minesweeper/internal/model"
)

// Key prefix for all minesweeper data
const keyPrefix = "msweeper"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// activeGameKey returns the Redis key holding a player's current game ID
func activeGameKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:active_game:%s", keyPrefix, playerID)
}

// statsKey returns the Redis key for a player's stats hash
func statsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, playerID)
}
