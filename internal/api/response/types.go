package response

import (
	"time"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/auth"
	"github.com/mcoot/minesweeper/internal/services/bot"
	"github.com/mcoot/minesweeper/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Stats is a player's record of finished games
type Stats struct {
	Played    int              `json:"played"`
	Won       int              `json:"won"`
	Lost      int              `json:"lost"`
	Abandoned int              `json:"abandoned"`
	WinRate   float64          `json:"win_rate"`
	BestTimes map[string]int64 `json:"best_times_ms"`
}

// StatsFromModel converts model.PlayerStats
func StatsFromModel(s *model.PlayerStats) Stats {
	best := make(map[string]int64, len(s.BestTimes))
	for k, v := range s.BestTimes {
		best[k] = v
	}
	return Stats{
		Played:    s.Played,
		Won:       s.Won,
		Lost:      s.Lost,
		Abandoned: s.Abandoned,
		WinRate:   s.WinRate(),
		BestTimes: best,
	}
}

// Cell states
const (
	CellHidden   = "hidden"
	CellRevealed = "revealed"
	CellFlagged  = "flagged"
)

// Cell is what a player can see of one grid cell
type Cell struct {
	State string `json:"state"`
	Mine  bool   `json:"mine,omitempty"`
	Count int    `json:"count,omitempty"`
	Tier  int    `json:"tier,omitempty"`
}

// CellFromModel hides everything about a cell that the player cannot see.
// Mines only show once revealed, which happens when the game is lost.
func CellFromModel(c *model.Cell) Cell {
	switch {
	case c.IsFlagged:
		return Cell{State: CellFlagged}
	case !c.IsRevealed:
		return Cell{State: CellHidden}
	case c.IsMine:
		return Cell{State: CellRevealed, Mine: true}
	default:
		return Cell{
			State: CellRevealed,
			Count: c.NeighbourMineCount,
			Tier:  model.CountTier(c.NeighbourMineCount),
		}
	}
}

// Position is a grid coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionFromModel converts model.Position
func PositionFromModel(p model.Position) Position {
	return Position{Row: p.Row, Col: p.Col}
}

// Game is the player's view of a game
type Game struct {
	ID           string     `json:"id"`
	State        string     `json:"state"`
	Status       string     `json:"status"`
	FlagsLeft    int        `json:"flags_left"`
	FlagsText    string     `json:"flags_text"`
	Rows         int        `json:"rows"`
	Cols         int        `json:"cols"`
	Mines        int        `json:"mines"`
	Moves        int        `json:"moves"`
	LossPosition *Position  `json:"loss_position,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	DurationMS   int64      `json:"duration_ms"`
	Cells        [][]Cell   `json:"cells"`
}

// GameFromModel converts model.Game to the player's view of it
func GameFromModel(g *model.Game, now time.Time) Game {
	cells := make([][]Cell, g.Grid.Rows)
	for r := range cells {
		cells[r] = make([]Cell, g.Grid.Cols)
		for c := range cells[r] {
			cells[r][c] = CellFromModel(&g.Grid.Cells[r][c])
		}
	}

	var loss *Position
	if g.LossPosition != nil {
		p := PositionFromModel(*g.LossPosition)
		loss = &p
	}

	return Game{
		ID:           string(g.ID),
		State:        string(g.State),
		Status:       g.StatusText(),
		FlagsLeft:    g.FlagsRemaining,
		FlagsText:    g.FlagsText(),
		Rows:         g.Settings.Rows,
		Cols:         g.Settings.Cols,
		Mines:        g.Settings.Mines,
		Moves:        g.Moves,
		LossPosition: loss,
		CreatedAt:    g.CreatedAt,
		FinishedAt:   g.FinishedAt,
		DurationMS:   g.Duration(now).Milliseconds(),
		Cells:        cells,
	}
}

// ActionResponse is the response after revealing or flagging a cell
type ActionResponse struct {
	Outcome   string     `json:"outcome"`
	Changed   bool       `json:"changed"`
	Positions []Position `json:"positions"`
	Game      Game       `json:"game"`
}

// ActionResponseFromResult converts a game.ActionResult
func ActionResponseFromResult(r *game.ActionResult, now time.Time) ActionResponse {
	positions := make([]Position, len(r.Positions))
	for i, p := range r.Positions {
		positions[i] = PositionFromModel(p)
	}
	return ActionResponse{
		Outcome:   string(r.Outcome),
		Changed:   r.Changed(),
		Positions: positions,
		Game:      GameFromModel(r.Game, now),
	}
}

// Move is a single bot move
type Move struct {
	Kind    string `json:"kind"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Certain bool   `json:"certain"`
}

// MoveFromModel converts model.Move
func MoveFromModel(m model.Move) Move {
	return Move{
		Kind:    string(m.Kind),
		Row:     m.Position.Row,
		Col:     m.Position.Col,
		Certain: m.Certain,
	}
}

// HintResponse is the response for a move suggestion
type HintResponse struct {
	Strategy string `json:"strategy"`
	Move     Move   `json:"move"`
}

// AutoplayResponse is the response after a bot played moves
type AutoplayResponse struct {
	Strategy string `json:"strategy"`
	Moves    []Move `json:"moves"`
	Game     Game   `json:"game"`
}

// AutoplayResponseFromResult converts a bot.AutoplayResult
func AutoplayResponseFromResult(strategy string, r *bot.AutoplayResult, now time.Time) AutoplayResponse {
	moves := make([]Move, len(r.Moves))
	for i, m := range r.Moves {
		moves[i] = MoveFromModel(m)
	}
	return AutoplayResponse{
		Strategy: strategy,
		Moves:    moves,
		Game:     GameFromModel(r.Game, now),
	}
}
