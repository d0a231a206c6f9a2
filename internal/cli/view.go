package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/thecube/internal/cube"
	"github.com/SeamusWaldron/thecube/internal/session"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const cellWidth = 4

// renderNet draws the facelets as an unfolded net of colored cells: U on top,
// L F R B across, D below.
func renderNet(f cube.Facelets, theme cube.Theme) string {
	cells := make(map[cube.Face]lipgloss.Style, len(theme.Faces))
	for face := range theme.Faces {
		cells[face] = lipgloss.NewStyle().
			Width(cellWidth).
			Background(lipgloss.Color(theme.Hex(face)))
	}

	row := func(face cube.Face, r int) string {
		var b strings.Builder
		for c := 0; c < 3; c++ {
			b.WriteString(cells[f[face][r*3+c]].Render(""))
		}
		return b.String()
	}

	pad := strings.Repeat(" ", 3*cellWidth)
	var lines []string
	for r := 0; r < 3; r++ {
		lines = append(lines, pad+row(cube.U, r))
	}
	for r := 0; r < 3; r++ {
		var b strings.Builder
		for _, face := range []cube.Face{cube.L, cube.F, cube.R, cube.B} {
			b.WriteString(row(face, r))
		}
		lines = append(lines, b.String())
	}
	for r := 0; r < 3; r++ {
		lines = append(lines, pad+row(cube.D, r))
	}
	return strings.Join(lines, "\n")
}

// formatBest prints a stored best time, or a dash when there is none.
func formatBest(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

func renderStats(s session.Stats) string {
	dur := func(name string, ms int64) string {
		return fmt.Sprintf("%-7s %s", name, formatBest(ms))
	}
	lines := []string{
		fmt.Sprintf("%-7s %d", "Solves", s.Solves),
		dur("Best", s.Best.Milliseconds()),
		dur("Worst", s.Worst.Milliseconds()),
		dur("Ao5", s.Ao5.Milliseconds()),
		dur("Ao12", s.Ao12.Milliseconds()),
		dur("Ao25", s.Ao25.Milliseconds()),
	}
	return strings.Join(lines, "\n")
}
