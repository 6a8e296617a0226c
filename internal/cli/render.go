package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
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

var stickerStyles = map[cube.Color]lipgloss.Style{}

func init() {
	for _, c := range append([]cube.Color{cube.None}, cube.Palette...) {
		stickerStyles[c] = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
	}
}

func sticker(c cube.Color) string {
	return stickerStyles[c].Render("  ")
}

// renderNet draws the unfolded cube with colored stickers:
//
//	   U
//	L F R B
//	   D
func renderNet(c *cube.Cube) string {
	var b strings.Builder
	blank := strings.Repeat(" ", 7)

	writeRow := func(dir cube.Vec, row int) {
		grid := c.Facelets(dir)
		for col := 0; col < 3; col++ {
			b.WriteString(sticker(grid[row][col]))
		}
		b.WriteString(" ")
	}

	for row := 0; row < 3; row++ {
		b.WriteString(blank)
		writeRow(cube.Up, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, dir := range []cube.Vec{cube.Left, cube.Front, cube.Right, cube.Back} {
			writeRow(dir, row)
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(blank)
		writeRow(cube.Down, row)
		b.WriteString("\n")
	}
	return b.String()
}

// recentMoves renders the last n notations of ms.
func recentMoves(notations []string, n int) string {
	prefix := ""
	if len(notations) > n {
		notations = notations[len(notations)-n:]
		prefix = "... "
	}
	return prefix + moveStyle.Render(strings.Join(notations, " "))
}
