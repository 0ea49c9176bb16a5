package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/session"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	blue    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

	title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00cccc"))

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	codeLine = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1a001a")).
			Background(lipgloss.Color("#ffcc00"))

	keyHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	keyText = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))

	metricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(12)
	metricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)

	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

// barStyle picks the color of bar i. The active pair wins over range
// colors, and range colors win over the sorted mark.
func barStyle(v frame.View, i int) lipgloss.Style {
	if v.IsActive(i) {
		return yellow
	}
	switch v.Colors[i] {
	case algo.ColorFound:
		return green
	case algo.ColorMiss:
		return dimmer
	case algo.ColorFixed, algo.ColorMerge:
		return red
	case algo.ColorDivide:
		return blue
	}
	if v.Sorted[i] {
		return magenta
	}
	return cyan
}

func stateStyle(s session.State) (string, lipgloss.Style) {
	switch s {
	case session.Running:
		return "●", green
	case session.Paused:
		return "○", yellow
	case session.Done:
		return "✓", magenta
	}
	return "·", dim
}

// hints renders "key action" pairs on one line.
func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(keyText.Render("  "))
		}
		b.WriteString(keyHint.Render(pairs[i]))
		b.WriteString(keyText.Render(" " + pairs[i+1]))
	}
	return b.String()
}

func separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return dimmer.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}
