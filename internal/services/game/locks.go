package game

import (
	"sync"

	"github.com/mcoot/minesweeper/internal/model"
)

// playerLocks serialises actions per player. Entries are dropped once no
// goroutine holds or waits on them.
type playerLocks struct {
	mu    sync.Mutex
	locks map[model.PlayerID]*playerLock
}

type playerLock struct {
	sync.Mutex
	refs int
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{locks: make(map[model.PlayerID]*playerLock)}
}

// lock blocks until the player's lock is held and returns its release func
func (l *playerLocks) lock(playerID model.PlayerID) func() {
	l.mu.Lock()
	pl, ok := l.locks[playerID]
	if !ok {
		pl = &playerLock{}
		l.locks[playerID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.Lock()
	return func() {
		pl.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, playerID)
		}
		l.mu.Unlock()
	}
}

// size reports how many players currently have lock entries
func (l *playerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
