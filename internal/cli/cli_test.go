package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFileRoundTrip(t *testing.T) {
	c := &Config{TokenFile: filepath.Join(t.TempDir(), "nested", "token")}

	require.NoError(t, c.LoadToken())
	assert.Empty(t, c.Token, "missing token file is not an error")

	require.NoError(t, c.SaveToken("abc123"))

	loaded := &Config{TokenFile: c.TokenFile}
	require.NoError(t, loaded.LoadToken())
	assert.Equal(t, "abc123", loaded.Token)

	require.NoError(t, loaded.ClearToken())
	assert.Empty(t, loaded.Token)
	_, err := os.Stat(c.TokenFile)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	require.NoError(t, loaded.ClearToken())
}

func TestLoadTokenTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  tok\n"), 0600))

	c := &Config{TokenFile: path}
	require.NoError(t, c.LoadToken())
	assert.Equal(t, "tok", c.Token)
}

func TestLoadTokenKeepsExplicitToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("from-file"), 0600))

	c := &Config{TokenFile: path, Token: "from-flag"}
	require.NoError(t, c.LoadToken())
	assert.Equal(t, "from-flag", c.Token)
}

func TestReadEvents(t *testing.T) {
	stream := "retry: 3000\n\n" +
		"event: connected\ndata: {\"status\":\"connected\"}\n\n" +
		": keepalive\n\n" +
		"event: board-update\ndata: <div>\ndata: </div>\n\n"

	type event struct{ name, data string }
	var got []event
	err := readEvents(strings.NewReader(stream), func(name, data string) {
		got = append(got, event{name, data})
	})

	require.NoError(t, err)
	assert.Equal(t, []event{
		{"connected", `{"status":"connected"}`},
		{"board-update", "<div>\n</div>"},
	}, got)
}

func TestPrintEventText(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, "board-update", strings.Repeat("x", 150), false)

	line := buf.String()
	assert.Contains(t, line, "board-update: ")
	assert.Contains(t, line, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, line, strings.Repeat("x", 101))
}

func TestRenderCell(t *testing.T) {
	tests := []struct {
		name      string
		cell      Cell
		triggered bool
		want      string
	}{
		{"hidden", Cell{State: "hidden"}, false, glyphHidden},
		{"flagged", Cell{State: "flagged"}, false, glyphFlag},
		{"mine", Cell{State: "revealed", Mine: true}, false, glyphMine},
		{"triggered mine", Cell{State: "revealed", Mine: true}, true, glyphMine},
		{"empty", Cell{State: "revealed"}, false, glyphEmpty},
		{"count", Cell{State: "revealed", Count: 3, Tier: 3}, false, "3"},
		{"high count", Cell{State: "revealed", Count: 8, Tier: 3}, false, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, renderCell(tt.cell, tt.triggered, 1), tt.want)
		})
	}
}

func TestPrintGameText(t *testing.T) {
	g := Game{
		State:     "ongoing",
		Status:    "Ongoing Game",
		FlagsText: "Flags left: 1",
		Rows:      2,
		Cols:      2,
		Cells: [][]Cell{
			{{State: "hidden"}, {State: "revealed", Count: 1, Tier: 1}},
			{{State: "flagged"}, {State: "revealed"}},
		},
	}

	var buf bytes.Buffer
	out := &Output{format: outputText, w: &buf}
	out.Print(g)

	text := buf.String()
	assert.Contains(t, text, "Ongoing Game")
	assert.Contains(t, text, "Flags left: 1")
	assert.Contains(t, text, glyphFlag)
	assert.Contains(t, text, glyphHidden)
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: outputJSON, w: &buf}
	out.Print(HealthResult{Status: "ok"})

	assert.JSONEq(t, `{"status":"ok"}`, buf.String())
}

func TestPrintStatsSortsBestTimes(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: outputText, w: &buf}
	out.Print(Stats{
		Played:    3,
		Won:       2,
		Lost:      1,
		WinRate:   2.0 / 3,
		BestTimes: map[string]int64{"9x9/10": 42_000, "16x16/40": 95_500},
	})

	text := buf.String()
	assert.Contains(t, text, "Win rate: 67%")
	assert.Less(t, strings.Index(text, "16x16/40: 1m35.5s"), strings.Index(text, "9x9/10: 42s"))
}
