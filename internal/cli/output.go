package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// Output formats
const (
	outputText = "text"
	outputJSON = "json"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == outputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == outputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == outputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Stats:
		o.printStats(v)
	case Game:
		o.printGame(v)
	case ActionResult:
		o.printActionResult(v)
	case HintResult:
		o.printHintResult(v)
	case AutoplayResult:
		o.printAutoplayResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Stats response type
type Stats struct {
	Played    int              `json:"played"`
	Won       int              `json:"won"`
	Lost      int              `json:"lost"`
	Abandoned int              `json:"abandoned"`
	WinRate   float64          `json:"win_rate"`
	BestTimes map[string]int64 `json:"best_times_ms"`
}

// Cell response type
type Cell struct {
	State string `json:"state"`
	Mine  bool   `json:"mine,omitempty"`
	Count int    `json:"count,omitempty"`
	Tier  int    `json:"tier,omitempty"`
}

// Position response type
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Game response type
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

// ActionResult response type
type ActionResult struct {
	Outcome   string     `json:"outcome"`
	Changed   bool       `json:"changed"`
	Positions []Position `json:"positions"`
	Game      Game       `json:"game"`
}

// Move response type
type Move struct {
	Kind    string `json:"kind"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Certain bool   `json:"certain"`
}

// HintResult response type
type HintResult struct {
	Strategy string `json:"strategy"`
	Move     Move   `json:"move"`
}

// AutoplayResult response type
type AutoplayResult struct {
	Strategy string `json:"strategy"`
	Moves    []Move `json:"moves"`
	Game     Game   `json:"game"`
}

// HealthResult response type, plus where and how fast it was answered
type HealthResult struct {
	Status  string        `json:"status"`
	Server  string        `json:"-"`
	Latency time.Duration `json:"-"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.w, "Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
}

func (o *Output) printStats(s Stats) {
	fmt.Fprintf(o.w, "Played: %d\n", s.Played)
	fmt.Fprintf(o.w, "Won: %d  Lost: %d  Abandoned: %d\n", s.Won, s.Lost, s.Abandoned)
	fmt.Fprintf(o.w, "Win rate: %.0f%%\n", s.WinRate*100)

	if len(s.BestTimes) == 0 {
		return
	}
	keys := make([]string, 0, len(s.BestTimes))
	for k := range s.BestTimes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(o.w, "Best times:")
	for _, k := range keys {
		fmt.Fprintf(o.w, "  %s: %s\n", k, formatDuration(s.BestTimes[k]))
	}
}

func (o *Output) printGame(g Game) {
	fmt.Fprintln(o.w, renderBoard(g))
	fmt.Fprintln(o.w, renderStatus(g))
}

func (o *Output) printActionResult(a ActionResult) {
	if !a.Changed {
		fmt.Fprintln(o.w, "Nothing changed")
	}
	o.printGame(a.Game)
}

func (o *Output) printHintResult(h HintResult) {
	certainty := "guess"
	if h.Move.Certain {
		certainty = "certain"
	}
	fmt.Fprintf(o.w, "Hint (%s): %s %d %d [%s]\n", h.Strategy, h.Move.Kind, h.Move.Row, h.Move.Col, certainty)
}

func (o *Output) printAutoplayResult(a AutoplayResult) {
	fmt.Fprintf(o.w, "Bot (%s) made %d moves\n", a.Strategy, len(a.Moves))
	for _, m := range a.Moves {
		fmt.Fprintf(o.w, "  %s %d %d\n", m.Kind, m.Row, m.Col)
	}
	o.printGame(a.Game)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Server %s: %s (%s)\n", h.Server, h.Status, h.Latency.Round(time.Millisecond))
}

func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Millisecond).String()
}
