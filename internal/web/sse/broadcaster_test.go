package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/testutil"
)

func testGame(state model.GameState) *model.Game {
	grid := testutil.GridFromLayout(
		"*.",
		"..",
	)
	return &model.Game{
		ID:             "GAME1",
		PlayerID:       "player-1",
		Settings:       model.Settings{Rows: 2, Cols: 2, Mines: 1},
		Grid:           grid,
		FlagsRemaining: 1,
		State:          state,
	}
}

func parseEventHTML(t *testing.T, message string) *goquery.Document {
	t.Helper()
	var html strings.Builder
	for _, line := range strings.Split(message, "\n") {
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			html.WriteString(data)
		}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html.String()))
	require.NoError(t, err)
	return doc
}

func TestRenderer_GameEventRendersPanel(t *testing.T) {
	events, err := NewRenderer().RenderGameEvent(context.Background(), model.Event{
		Type: model.EventCellRevealed,
		Game: testGame(model.GameStateOngoing),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, BoardUpdateEvent, events[0].EventName)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(events[0].HTML))
	require.NoError(t, err)
	assert.Equal(t, model.StatusOngoing, doc.Find("#game-status").Text())
	assert.Equal(t, "Flags left: 1", doc.Find("#flag-status").Text())
	assert.Equal(t, 4, doc.Find("#board button").Length())
}

func TestRenderer_AbandonRendersEmptyPanel(t *testing.T) {
	events, err := NewRenderer().RenderGameEvent(context.Background(), model.Event{
		Type: model.EventGameAbandoned,
		Game: testGame(model.GameStateOngoing),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].HTML, `id="no-game"`)
}

func TestBroadcaster_NotifySendsToPlayerHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("player-1")
	client := NewClient(hub, "player-1")
	require.True(t, hub.Register(client))

	other := manager.GetOrCreateHub("player-2")
	otherClient := NewClient(other, "player-2")
	require.True(t, other.Register(otherClient))

	broadcaster.Notify(context.Background(), model.Event{
		Type:     model.EventGameLost,
		PlayerID: "player-1",
		GameID:   "GAME1",
		Game:     testGame(model.GameStateLost),
	})

	msg := receive(t, client)
	assert.True(t, strings.HasPrefix(msg, "event: board-update\n"))
	doc := parseEventHTML(t, msg)
	assert.Equal(t, model.StatusLost, doc.Find("#game-status").Text())
	assert.True(t, doc.Find("#board").HasClass("lost"))

	select {
	case <-otherClient.send:
		t.Fatal("another player's page received the update")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBroadcaster_NotifyWithoutListeners(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	broadcaster.Notify(context.Background(), model.Event{
		Type:     model.EventCellFlagged,
		PlayerID: "player-1",
		Game:     testGame(model.GameStateOngoing),
	})

	assert.Nil(t, manager.GetHub("player-1"))
}
