package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minesweeper/internal/api"
	"github.com/mcoot/minesweeper/internal/api/apierr"
	"github.com/mcoot/minesweeper/internal/api/response"
	"github.com/mcoot/minesweeper/internal/factory"
	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/testutil"
)

// testServer wraps the API router with a test app whose mines can be queued
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		Clock:          app.Clock,
		AuthService:    app.AuthService,
		StatsService:   app.StatsService,
		GameController: app.GameController,
		BotService:     app.BotService,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rr.Code)
	resp := decode[apierr.ErrorResponse](t, rr)
	assert.Equal(t, code, resp.Error.Code)
}

func createGuestPlayer(t *testing.T, ts *testServer, displayName string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": displayName}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	return decode[response.AuthResponse](t, rr).SessionToken
}

// startGame begins a game with mines at the given positions
func startGame(t *testing.T, ts *testServer, token string, rows, cols int, mines ...model.Position) response.Game {
	t.Helper()

	ts.app.MockRandom.QueueMines(mines...)
	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]int{
		"rows":  rows,
		"cols":  cols,
		"mines": len(mines),
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.Game](t, rr)
}

func cellAction(ts *testServer, token, action string, row, col int) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, "/api/v1/games/current/"+action, map[string]int{"row": row, "col": col}, token)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/lobbies", nil, "")
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeNotFound)
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": "Alice"}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	resp := decode[response.AuthResponse](t, rr)
	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/register", map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	registered := decode[response.AuthResponse](t, rr)
	assert.False(t, registered.Player.IsGuest)

	rr = ts.request(http.MethodPost, "/api/v1/players/register", map[string]string{
		"username": "alice",
		"password": "secret123",
	}, "")
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeUsernameExists)

	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{
		"username": "alice",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, registered.Player.ID, decode[response.AuthResponse](t, rr).Player.ID)

	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	}, "")
	assertErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeInvalidCredentials)
}

func TestGetMeAndLogout(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bob", decode[response.Player](t, rr).DisplayName)

	rr = ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assertErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeUnauthorized)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assertErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeUnauthorized)

	rr = ts.request(http.MethodPost, "/api/v1/games", nil, "")
	assertErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeUnauthorized)

	rr = ts.request(http.MethodGet, "/api/v1/games/current", nil, "not-a-token")
	assertErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeUnauthorized)
}

func TestNewGameSettings(t *testing.T) {
	tests := []struct {
		name  string
		body  any
		rows  int
		cols  int
		mines int
	}{
		{"empty body uses defaults", nil, 10, 10, 10},
		{"numbers", map[string]int{"rows": 5, "cols": 6, "mines": 7}, 5, 6, 7},
		{"numeric strings", map[string]string{"rows": "4", "cols": "8", "mines": "3"}, 4, 8, 3},
		{"blank strings use defaults", map[string]string{"rows": " ", "cols": "", "mines": ""}, 10, 10, 10},
		{"garbage uses defaults", map[string]string{"rows": "lots", "cols": "5", "mines": "x"}, 10, 5, 10},
		{"mines clamped to cells", map[string]int{"rows": 2, "cols": 2, "mines": 50}, 2, 2, 4},
		{"preset wins", map[string]any{"preset": "expert", "rows": 3}, 16, 30, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			token := createGuestPlayer(t, ts, "Player")

			rr := ts.request(http.MethodPost, "/api/v1/games", tt.body, token)
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

			g := decode[response.Game](t, rr)
			assert.Equal(t, tt.rows, g.Rows)
			assert.Equal(t, tt.cols, g.Cols)
			assert.Equal(t, tt.mines, g.Mines)
			assert.Equal(t, tt.mines, g.FlagsLeft)
			assert.Equal(t, string(model.GameStateOngoing), g.State)
			assert.Equal(t, "Ongoing Game", g.Status)
			require.Len(t, g.Cells, tt.rows)
			for _, row := range g.Cells {
				require.Len(t, row, tt.cols)
				for _, c := range row {
					assert.Equal(t, response.CellHidden, c.State)
					assert.False(t, c.Mine)
				}
			}
		})
	}
}

func TestNewGameBadRequests(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]string{"preset": "impossible"}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeUnknownPreset)

	rr = ts.request(http.MethodPost, "/api/v1/games", map[string]any{"rows": []int{1}}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestCurrentGame(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")

	rr := ts.request(http.MethodGet, "/api/v1/games/current", nil, token)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeNoActiveGame)

	created := startGame(t, ts, token, 3, 3, testutil.Pos(0, 0))

	rr = ts.request(http.MethodGet, "/api/v1/games/current", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created.ID, decode[response.Game](t, rr).ID)
}

func TestWinningGame(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")
	startGame(t, ts, token, 3, 3, testutil.Pos(0, 0))

	ts.app.MockClock.Advance(5 * time.Second)
	rr := cellAction(ts, token, "reveal", 2, 2)
	require.Equal(t, http.StatusOK, rr.Code)

	revealed := decode[response.ActionResponse](t, rr)
	assert.Equal(t, string(model.OutcomeRevealed), revealed.Outcome)
	assert.True(t, revealed.Changed)
	assert.Len(t, revealed.Positions, 8)
	assert.Equal(t, response.CellHidden, revealed.Game.Cells[0][0].State)
	assert.Equal(t, 1, revealed.Game.Cells[0][1].Count)
	assert.Equal(t, 0, revealed.Game.Cells[2][2].Count)
	assert.Equal(t, "Ongoing Game", revealed.Game.Status)

	// every safe cell is open but the mine is unflagged
	assert.Equal(t, string(model.GameStateOngoing), revealed.Game.State)

	rr = cellAction(ts, token, "flag", 0, 0)
	require.Equal(t, http.StatusOK, rr.Code)

	won := decode[response.ActionResponse](t, rr)
	assert.Equal(t, string(model.OutcomeWon), won.Outcome)
	assert.Equal(t, string(model.GameStateWon), won.Game.State)
	assert.Equal(t, "You won!", won.Game.Status)
	assert.Equal(t, 0, won.Game.FlagsLeft)
	assert.Equal(t, "Flags left: 0", won.Game.FlagsText)
	assert.Equal(t, response.CellFlagged, won.Game.Cells[0][0].State)
	assert.NotNil(t, won.Game.FinishedAt)
	assert.Equal(t, int64(5000), won.Game.DurationMS)

	// finished games ignore further input
	rr = cellAction(ts, token, "reveal", 0, 0)
	require.Equal(t, http.StatusOK, rr.Code)
	ignored := decode[response.ActionResponse](t, rr)
	assert.Equal(t, string(model.OutcomeNone), ignored.Outcome)
	assert.False(t, ignored.Changed)

	rr = ts.request(http.MethodGet, "/api/v1/players/me/stats", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[response.Stats](t, rr)
	assert.Equal(t, 1, stats.Played)
	assert.Equal(t, 1, stats.Won)
	assert.InDelta(t, 1.0, stats.WinRate, 0.0001)
	assert.Equal(t, int64(5000), stats.BestTimes["3x3/1"])
}

func TestLosingGame(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")
	startGame(t, ts, token, 3, 3, testutil.Pos(0, 0), testutil.Pos(2, 2))

	rr := cellAction(ts, token, "reveal", 2, 2)
	require.Equal(t, http.StatusOK, rr.Code)

	lost := decode[response.ActionResponse](t, rr)
	assert.Equal(t, string(model.OutcomeLost), lost.Outcome)
	assert.Equal(t, string(model.GameStateLost), lost.Game.State)
	assert.Equal(t, "Game Over", lost.Game.Status)
	require.NotNil(t, lost.Game.LossPosition)
	assert.Equal(t, response.Position{Row: 2, Col: 2}, *lost.Game.LossPosition)
	assert.True(t, lost.Game.Cells[0][0].Mine)
	assert.True(t, lost.Game.Cells[2][2].Mine)
	assert.Equal(t, response.CellHidden, lost.Game.Cells[1][1].State)

	rr = ts.request(http.MethodGet, "/api/v1/players/me/stats", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[response.Stats](t, rr)
	assert.Equal(t, 1, stats.Lost)
	assert.Empty(t, stats.BestTimes)
}

func TestFlagToggleAndLimit(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")
	startGame(t, ts, token, 3, 3, testutil.Pos(0, 0))

	rr := cellAction(ts, token, "flag", 1, 1)
	require.Equal(t, http.StatusOK, rr.Code)
	flagged := decode[response.ActionResponse](t, rr)
	assert.Equal(t, string(model.OutcomeFlagged), flagged.Outcome)
	assert.Equal(t, 0, flagged.Game.FlagsLeft)

	// no flags left
	rr = cellAction(ts, token, "flag", 2, 2)
	require.Equal(t, http.StatusOK, rr.Code)
	refused := decode[response.ActionResponse](t, rr)
	assert.False(t, refused.Changed)
	assert.Equal(t, response.CellHidden, refused.Game.Cells[2][2].State)
	assert.Equal(t, 0, refused.Game.FlagsLeft)

	// flagged cells cannot be revealed
	rr = cellAction(ts, token, "reveal", 1, 1)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[response.ActionResponse](t, rr).Changed)

	rr = cellAction(ts, token, "flag", 1, 1)
	require.Equal(t, http.StatusOK, rr.Code)
	unflagged := decode[response.ActionResponse](t, rr)
	assert.Equal(t, string(model.OutcomeUnflagged), unflagged.Outcome)
	assert.Equal(t, 1, unflagged.Game.FlagsLeft)
	assert.Equal(t, "Flags left: 1", unflagged.Game.FlagsText)
}

func TestCellActionErrors(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")

	rr := cellAction(ts, token, "reveal", 0, 0)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeNoActiveGame)

	startGame(t, ts, token, 3, 3, testutil.Pos(0, 0))

	rr = cellAction(ts, token, "reveal", 3, 0)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidPosition)

	rr = cellAction(ts, token, "flag", 0, -1)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidPosition)

	rr = ts.request(http.MethodPost, "/api/v1/games/current/reveal", map[string]int{"row": 1}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)

	rr = ts.request(http.MethodPost, "/api/v1/games/current/flag", nil, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestHint(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")

	rr := ts.request(http.MethodGet, "/api/v1/games/current/hint", nil, token)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeNoActiveGame)

	startGame(t, ts, token, 3, 3, testutil.Pos(0, 0))
	require.Equal(t, http.StatusOK, cellAction(ts, token, "reveal", 2, 2).Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/current/hint", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	hint := decode[response.HintResponse](t, rr)
	assert.Equal(t, model.BotStrategyDeduce, hint.Strategy)
	assert.Equal(t, response.Move{Kind: string(model.MoveFlag), Row: 0, Col: 0, Certain: true}, hint.Move)

	rr = ts.request(http.MethodGet, "/api/v1/games/current/hint?strategy=psychic", nil, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeUnknownStrategy)

	// a hint never changes the game
	rr = ts.request(http.MethodGet, "/api/v1/games/current", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, response.CellHidden, decode[response.Game](t, rr).Cells[0][0].State)

	require.Equal(t, http.StatusOK, cellAction(ts, token, "flag", 0, 0).Code)
	rr = ts.request(http.MethodGet, "/api/v1/games/current/hint", nil, token)
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeNoMoveAvailable)
}

func TestAutoplay(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")
	startGame(t, ts, token, 3, 3, testutil.Pos(0, 0))
	require.Equal(t, http.StatusOK, cellAction(ts, token, "reveal", 2, 2).Code)

	rr := ts.request(http.MethodPost, "/api/v1/games/current/autoplay", map[string]int{"max_moves": -1}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)

	rr = ts.request(http.MethodPost, "/api/v1/games/current/autoplay", map[string]string{"strategy": "psychic"}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeUnknownStrategy)

	rr = ts.request(http.MethodPost, "/api/v1/games/current/autoplay", nil, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	result := decode[response.AutoplayResponse](t, rr)
	assert.Equal(t, model.BotStrategyDeduce, result.Strategy)
	require.Len(t, result.Moves, 1)
	assert.Equal(t, string(model.MoveFlag), result.Moves[0].Kind)
	assert.Equal(t, string(model.GameStateWon), result.Game.State)
	assert.Equal(t, "You won!", result.Game.Status)
}

func TestAbandonGame(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")

	rr := ts.request(http.MethodDelete, "/api/v1/games/current", nil, token)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeNoActiveGame)

	startGame(t, ts, token, 3, 3, testutil.Pos(0, 0))
	require.Equal(t, http.StatusOK, cellAction(ts, token, "reveal", 1, 1).Code)

	rr = ts.request(http.MethodDelete, "/api/v1/games/current", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/current", nil, token)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeNoActiveGame)

	rr = ts.request(http.MethodGet, "/api/v1/players/me/stats", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[response.Stats](t, rr).Abandoned)
}

func TestNewGameReplacesCurrent(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Player")

	first := startGame(t, ts, token, 3, 3, testutil.Pos(0, 0))
	second := startGame(t, ts, token, 4, 4, testutil.Pos(1, 1))
	assert.NotEqual(t, first.ID, second.ID)

	rr := ts.request(http.MethodGet, "/api/v1/games/current", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	current := decode[response.Game](t, rr)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, 4, current.Rows)
}

func TestPlayersHaveSeparateGames(t *testing.T) {
	ts := newTestServer(t)
	alice := createGuestPlayer(t, ts, "Alice")
	bob := createGuestPlayer(t, ts, "Bob")

	startGame(t, ts, alice, 3, 3, testutil.Pos(0, 0))

	rr := ts.request(http.MethodGet, "/api/v1/games/current", nil, bob)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeNoActiveGame)

	rr = cellAction(ts, bob, "reveal", 1, 1)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeNoActiveGame)
}
