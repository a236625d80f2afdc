package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-duo/internal/core"
)

// KeyMap defines the key bindings of the game screens.
type KeyMap struct {
	Jump1       key.Binding
	Jump2       key.Binding
	Start       key.Binding
	SwitchField key.Binding
	Pause       key.Binding
	Back        key.Binding
	Quit        key.Binding
	Screenshot  key.Binding
}

// DefaultKeyMap returns the default bindings: Space for player 1 and the up
// arrow for player 2, so both fit on one keyboard.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump1: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "P1 flap"),
		),
		Jump2: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "P2 flap"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		SwitchField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch player"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump1, k.Jump2, k.Pause, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump1, k.Jump2, k.Pause},
		{k.Start, k.SwitchField, k.Back},
		{k.Screenshot, k.Quit},
	}
}

// menuHelp is the help shown while names are being edited. q is typeable
// there, so only ctrl+c quits.
func (k KeyMap) menuHelp() []key.Binding {
	return []key.Binding{
		k.Start,
		k.SwitchField,
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// Action translates a key message to a game action. Jump and pause keys map
// to their actions in every phase; callers decide what applies.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Jump1):
		return core.ActionJump1
	case key.Matches(msg, k.Jump2):
		return core.ActionJump2
	case key.Matches(msg, k.Start):
		return core.ActionConfirm
	case key.Matches(msg, k.SwitchField):
		return core.ActionSwitchField
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	}
	return core.ActionNone
}
