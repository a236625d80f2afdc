package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-duo/internal/replay"
	"github.com/vovakirdan/flappy-duo/internal/storage"
)

// maxReplays is how many replays the browser loads.
const maxReplays = 200

// VerifyFunc re-simulates a stored record and reports a mismatch.
type VerifyFunc func(replay.Record) error

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Verify, k.Delete, k.Reload},
		{k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowser is the Bubble Tea model listing stored replays.
type ReplayBrowser struct {
	store    *storage.Store
	verify   VerifyFunc
	entries  []storage.ReplayEntry
	stats    storage.Stats
	table    table.Model
	help     help.Model
	keys     ReplayKeyMap
	width    int
	height   int
	status   string
	quitting bool
}

// NewReplayBrowser creates a browser over the given store.
func NewReplayBrowser(store *storage.Store, verify VerifyFunc, width, height int) ReplayBrowser {
	m := ReplayBrowser{
		store:  store,
		verify: verify,
		keys:   DefaultReplayKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized to the window.
func (m *ReplayBrowser) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Player 1", Width: 11},
		{Title: "Player 2", Width: 11},
		{Title: "Score", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "Mode", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads replays and aggregate stats from the store.
func (m *ReplayBrowser) load() {
	m.entries = nil
	m.stats = storage.Stats{}
	if m.store != nil {
		entries, err := m.store.ListReplays(maxReplays)
		if err != nil {
			m.status = err.Error()
		} else {
			m.entries = entries
		}
		if st, err := m.store.Stats(); err == nil {
			m.stats = st
		}
	}
	m.updateTableRows()
}

// updateTableRows refreshes the table from the loaded entries.
func (m *ReplayBrowser) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			strconv.FormatInt(e.ID, 10),
			e.Player1,
			e.Player2,
			fmt.Sprintf("%d-%d", e.Score1, e.Score2),
			strconv.Itoa(e.Ticks),
			e.Difficulty,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// selected returns the entry under the cursor.
func (m ReplayBrowser) selected() (storage.ReplayEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.ReplayEntry{}, false
	}
	return m.entries[i], true
}

// Init initializes the browser.
func (m ReplayBrowser) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.status = m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.selected(); ok && m.store != nil {
				if err := m.store.DeleteReplay(e.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("replay #%d deleted", e.ID)
				}
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.status = ""
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifySelected re-simulates the selected replay and describes the result.
func (m ReplayBrowser) verifySelected() string {
	e, ok := m.selected()
	if !ok || m.store == nil || m.verify == nil {
		return ""
	}
	rec, err := m.store.Replay(e.ID)
	if err != nil {
		return err.Error()
	}
	switch err := m.verify(rec); {
	case err == nil:
		return fmt.Sprintf("replay #%d verified: %d ticks, %d-%d", e.ID, rec.Ticks, rec.Scores[0], rec.Scores[1])
	case errors.Is(err, replay.ErrMismatch):
		return fmt.Sprintf("replay #%d does not reproduce: %v", e.ID, err)
	default:
		return err.Error()
	}
}

// View renders the browser.
func (m ReplayBrowser) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("REPLAYS"))
	b.WriteString("\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statsStyle.Render(fmt.Sprintf("%d games  best score %d  longest %d ticks  avg %.0f ticks",
		m.stats.Games, m.stats.BestScore, m.stats.LongestRun, m.stats.AvgTicks)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render(m.status))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplayBrowser) renderTableContent() string {
	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No replays recorded yet.\nFinish a game to save one!")
	}
	return m.table.View()
}

// RunReplayBrowser runs the replay browser full screen.
func RunReplayBrowser(store *storage.Store, verify VerifyFunc, width, height int) error {
	p := tea.NewProgram(NewReplayBrowser(store, verify, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
