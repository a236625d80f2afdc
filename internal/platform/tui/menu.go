package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-duo/internal/core"
	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
)

const title = `
 ___ _                       ___
| __| |__ _ _ __ _ __ _  _  |   \ _  _ ___
| _|| / _' | '_ \ '_ \ || | | |) | || / _ \
|_| |_\__,_| .__/ .__/\_, | |___/ \_,_\___/
           |_|  |_|   |__/`

type menuStyles struct {
	title   lipgloss.Style
	label   [flappyduo.NumPlayers]lipgloss.Style
	field   lipgloss.Style
	focused lipgloss.Style
	hint    lipgloss.Style
	status  lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := NewPalette(r)
	return menuStyles{
		title: r.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		label: [flappyduo.NumPlayers]lipgloss.Style{
			p[core.PlayerColor(0)].Width(10),
			p[core.PlayerColor(1)].Width(10),
		},
		field: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		focused: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1),
		hint:   r.NewStyle().Foreground(lipgloss.Color("245")),
		status: r.NewStyle().Foreground(lipgloss.Color("220")),
	}
}

// menuView renders the name entry screen.
func (m Model) menuView() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(strings.TrimPrefix(title, "\n")))
	b.WriteString("\n\n")

	controls := [flappyduo.NumPlayers]string{"space", "↑"}
	for i := range flappyduo.NumPlayers {
		box := m.styles.field
		if i == m.focus {
			box = m.styles.focused
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			m.styles.label[i].Render(m.inputs[i].Placeholder),
			box.Render(m.inputs[i].View()),
			m.styles.hint.Render("  flap: "+controls[i]),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.status.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.menuHelp()))

	if m.opts.Runtime.ScreenW <= 0 || m.opts.Runtime.ScreenH <= 0 {
		return b.String()
	}
	return lipgloss.Place(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH,
		lipgloss.Center, lipgloss.Center, b.String())
}
