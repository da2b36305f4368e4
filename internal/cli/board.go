package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell glyphs
const (
	glyphHidden = "#"
	glyphFlag   = "F"
	glyphMine   = "*"
	glyphEmpty  = "."
)

var (
	hiddenStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	emptyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	flagStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mineStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	triggeredMineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")).Bold(true)
	headerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	boardStyle         = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("248")).Padding(0, 1)

	// Indexed by count tier: 1, 2, 3+
	tierStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("41")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}

	wonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lostStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	ongoingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 1)
	valueStyle   = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")).Padding(0, 1)
)

// renderBoard draws the grid with row and column indices
func renderBoard(g Game) string {
	width := len(fmt.Sprint(max(g.Rows, g.Cols) - 1))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width+1))
	for col := 0; col < g.Cols; col++ {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%*d", width, col)))
		b.WriteString(" ")
	}

	for row, cells := range g.Cells {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("%*d", width, row)))
		b.WriteString(" ")
		for col, cell := range cells {
			triggered := g.LossPosition != nil && g.LossPosition.Row == row && g.LossPosition.Col == col
			b.WriteString(renderCell(cell, triggered, width))
			b.WriteString(" ")
		}
	}

	return boardStyle.Render(b.String())
}

func renderCell(c Cell, triggered bool, width int) string {
	pad := func(s string) string {
		return fmt.Sprintf("%*s", width, s)
	}

	switch {
	case c.State == "flagged":
		return flagStyle.Render(pad(glyphFlag))
	case c.State == "hidden":
		return hiddenStyle.Render(pad(glyphHidden))
	case c.Mine && triggered:
		return triggeredMineStyle.Render(pad(glyphMine))
	case c.Mine:
		return mineStyle.Render(pad(glyphMine))
	case c.Count == 0:
		return emptyStyle.Render(pad(glyphEmpty))
	default:
		tier := min(max(c.Tier, 1), len(tierStyles))
		return tierStyles[tier-1].Render(pad(fmt.Sprint(c.Count)))
	}
}

// renderStatus shows the status line, flag counter and elapsed time
func renderStatus(g Game) string {
	statusStyle := ongoingStyle
	switch g.State {
	case "won":
		statusStyle = wonStyle
	case "lost":
		statusStyle = lostStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		statusStyle.Render(g.Status),
		"  ",
		labelStyle.Render("FLAGS"),
		valueStyle.Render(g.FlagsText),
		"  ",
		labelStyle.Render("TIME"),
		valueStyle.Render(formatDuration(g.DurationMS)),
	)
}
