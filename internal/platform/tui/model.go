package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-duo/internal/config"
	"github.com/vovakirdan/flappy-duo/internal/core"
	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
	"github.com/vovakirdan/flappy-duo/internal/replay"
	"github.com/vovakirdan/flappy-duo/internal/storage"
)

// Options configures a game model.
type Options struct {
	Game       config.DuoConfig
	Runtime    core.RuntimeConfig
	Difficulty string         // label stored with replays
	Store      *storage.Store // nil disables replay saving
	Logger     *log.Logger
	Renderer   *lipgloss.Renderer // nil uses the stdout renderer
	// ScreenshotDir is where ctrl+s writes text screenshots. Empty means
	// ~/.flappyduo/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for a two-player session: name entry menu,
// the running game and the game-over screen.
type Model struct {
	session   *flappyduo.Session
	recorder  *replay.Recorder
	particles *flappyduo.ParticleSystem
	latches   [flappyduo.NumPlayers]*core.JumpLatch
	holds     [flappyduo.NumPlayers]*core.HoldTracker

	inputs [flappyduo.NumPlayers]textinput.Model
	focus  int

	keys    KeyMap
	help    help.Model
	styles  menuStyles
	palette Palette
	screen  *core.Screen

	opts     Options
	logger   *log.Logger
	status   string
	quitting bool
}

// NewModel creates a game model in the menu.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = opts.Game.TickRate
	}

	session := flappyduo.NewSession(opts.Game, logger)
	if opts.Runtime.Seed != 0 {
		// A fixed seed makes every game of this model replay the same course
		seed := opts.Runtime.Seed
		session.SetSeedSource(func() int64 { return seed })
	}
	recorder := replay.NewRecorder(opts.Difficulty)
	session.SetRecorder(recorder)

	m := Model{
		session:   session,
		recorder:  recorder,
		particles: flappyduo.NewParticleSystem(time.Now().UnixNano()),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    newMenuStyles(opts.Renderer),
		palette:   NewPalette(opts.Renderer),
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		opts:      opts,
		logger:    logger,
	}
	for i := range flappyduo.NumPlayers {
		m.latches[i] = &core.JumpLatch{}
		m.holds[i] = core.NewHoldTracker(m.latches[i], opts.Game.Input.ReleaseTicks)
		m.inputs[i] = newNameInput(i, session.Names()[i])
	}
	m.inputs[0].Focus()
	return m
}

func newNameInput(player int, name string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("Player %d", player+1)
	ti.CharLimit = flappyduo.MaxNameLength
	ti.Width = flappyduo.MaxNameLength + 1
	ti.Prompt = ""
	ti.SetValue(name)
	ti.Validate = func(s string) error {
		if flappyduo.SanitizeName(s) != strings.TrimSpace(s) {
			return fmt.Errorf("letters, digits and spaces only")
		}
		return nil
	}
	return ti
}

// Init starts the cursor blink and the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.opts.Runtime.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.session.Phase() == flappyduo.PhaseMenu {
		return m.updateInputs(msg)
	}
	return m, nil
}

// handleKey processes keyboard input for the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	switch m.session.Phase() {
	case flappyduo.PhaseMenu:
		return m.handleMenuKey(msg)
	case flappyduo.PhasePlaying:
		return m.handlePlayingKey(msg)
	default:
		return m.handleGameOverKey(msg)
	}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionConfirm:
		m.startGame()
		return m, nil
	case core.ActionSwitchField:
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % flappyduo.NumPlayers
		return m, m.inputs[m.focus].Focus()
	case core.ActionBack:
		m.quitting = true
		return m, tea.Quit
	}
	return m.updateInputs(msg)
}

func (m Model) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionJump1:
		m.holds[0].KeyEvent()
	case core.ActionJump2:
		m.holds[1].KeyEvent()
	case core.ActionPause:
		if err := m.session.TogglePause(); err != nil {
			m.logger.Debug("pause ignored", "error", err)
		}
	case core.ActionBack:
		m.session.ResetToMenu()
		m.enterMenu()
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionConfirm, core.ActionBack:
		if err := m.session.Restart(); err != nil {
			m.logger.Debug("restart ignored", "error", err)
			return m, nil
		}
		m.enterMenu()
		return m, m.inputs[m.focus].Focus()
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// updateInputs forwards a message to the focused name field.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) startGame() {
	if err := m.session.Start(m.inputs[0].Value(), m.inputs[1].Value()); err != nil {
		m.logger.Debug("start ignored", "error", err)
		return
	}
	for i := range flappyduo.NumPlayers {
		m.latches[i].Reset()
		m.inputs[i].Blur()
	}
	m.particles.Clear()
	m.status = ""
}

// enterMenu refreshes the name fields from the session after a game.
func (m *Model) enterMenu() {
	names := m.session.Names()
	for i := range flappyduo.NumPlayers {
		m.inputs[i].SetValue(names[i])
		m.inputs[i].Blur()
		m.latches[i].Reset()
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.particles.Clear()
}

// handleTick advances the simulation by one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Runtime.TickRate)
	if m.session.Phase() == flappyduo.PhaseMenu {
		return m, next
	}

	if m.session.Phase() == flappyduo.PhasePlaying {
		jump1 := m.latches[0].Consume()
		jump2 := m.latches[1].Consume()

		ev, err := m.session.Tick(jump1, jump2)
		if err != nil {
			m.logger.Error("tick failed", "error", err)
			return m, next
		}
		for _, h := range m.holds {
			h.Tick()
		}
		if m.session.Paused() {
			return m, next
		}

		m.particles.React(m.session.Snapshot(), ev)
		if ev.GameOver {
			m.saveReplay()
		}
	}

	// Particles keep fading on the game-over screen
	m.particles.Update()
	return m, next
}

// saveReplay stores the finished game when storage is available.
func (m *Model) saveReplay() {
	rec, ok := m.recorder.Record()
	if !ok || m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveReplay(rec)
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		m.status = "replay not saved"
		return
	}
	m.logger.Info("replay saved", "id", id, "ticks", rec.Ticks)
	m.status = fmt.Sprintf("replay #%d saved", id)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("no home directory for screenshots", "error", err)
			return
		}
		dir = filepath.Join(home, ".flappyduo", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	DrawScene(m.screen, m.session.Snapshot(), m.particles.Particles())
	name := fmt.Sprintf("flappyduo_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.status = "screenshot saved"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.session.Phase() == flappyduo.PhaseMenu {
		return m.menuView()
	}

	snap := m.session.Snapshot()
	DrawScene(m.screen, snap, m.particles.Particles())
	if m.status != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, " "+m.status+" ", core.ColorText)
	}
	return RenderScreen(m.screen, m.palette)
}

// Session exposes the underlying session, for tests and embedding.
func (m Model) Session() *flappyduo.Session {
	return m.session
}

// Run starts the Bubble Tea program for a local two-player game.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
