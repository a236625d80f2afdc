package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-duo/internal/core"
)

// Palette maps core.Color to lipgloss styles for one renderer.
type Palette map[core.Color]lipgloss.Style

// NewPalette builds the game palette. A nil renderer uses the default one
// bound to stdout; SSH sessions pass their own so color detection follows
// the client terminal.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := func(code string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return Palette{
		core.ColorDefault:  r.NewStyle(),
		core.ColorPlayer1:  fg("205").Bold(true),
		core.ColorPlayer2:  fg("51").Bold(true),
		core.ColorPipe:     fg("34"),
		core.ColorPipeEdge: fg("46"),
		core.ColorText:     fg("15"),
		core.ColorDead:     fg("240"),
		core.ColorSpark:    fg("231"),
		core.ColorStar:     fg("238"),
		core.ColorSkyline:  fg("54"),
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style call.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[color]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
