package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// GameKeyMap defines the key bindings used while a level is being played.
// Player 1 steers with WASD and player 2 with the arrow keys.
type GameKeyMap struct {
	P1Up    key.Binding
	P1Down  key.Binding
	P1Left  key.Binding
	P1Right key.Binding

	P2Up    key.Binding
	P2Down  key.Binding
	P2Left  key.Binding
	P2Right key.Binding

	ResetLevel key.Binding
	Emergency  key.Binding
	ToggleMode key.Binding
	Pause      key.Binding
	NewSession key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ResetLevel, k.Emergency, k.ToggleMode, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Up, k.P1Left, k.P1Down, k.P1Right},
		{k.P2Up, k.P2Left, k.P2Down, k.P2Right},
		{k.ResetLevel, k.Emergency, k.ToggleMode, k.Pause},
		{k.NewSession, k.Help, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		P1Up:    key.NewBinding(key.WithKeys("w", "W"), key.WithHelp("w", "P1 up")),
		P1Down:  key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "P1 down")),
		P1Left:  key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "P1 left")),
		P1Right: key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "P1 right")),

		P2Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "P2 up")),
		P2Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "P2 down")),
		P2Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "P2 left")),
		P2Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "P2 right")),

		ResetLevel: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reset level")),
		Emergency:  key.NewBinding(key.WithKeys("e", "E"), key.WithHelp("e", "emergency reset")),
		ToggleMode: key.NewBinding(key.WithKeys("m", "M"), key.WithHelp("m", "1/2 players")),
		Pause:      key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "pause")),
		NewSession: key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "new session")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyResult is what a key press means for the game.
type KeyResult struct {
	Slot   core.SlotID
	Action core.Action
	Held   bool // Direction keys are held; everything else is one-shot
}

// Resolve translates a key message to a game action.
// In single mode the arrow keys steer player 1 as well, so one player can
// use either key set. Returns false for unbound keys.
func (k GameKeyMap) Resolve(msg tea.KeyMsg, dual bool) (KeyResult, bool) {
	p2 := core.Slot2
	if !dual {
		p2 = core.Slot1
	}

	directions := []struct {
		binding key.Binding
		slot    core.SlotID
		action  core.Action
	}{
		{k.P1Up, core.Slot1, core.ActionUp},
		{k.P1Down, core.Slot1, core.ActionDown},
		{k.P1Left, core.Slot1, core.ActionLeft},
		{k.P1Right, core.Slot1, core.ActionRight},
		{k.P2Up, p2, core.ActionUp},
		{k.P2Down, p2, core.ActionDown},
		{k.P2Left, p2, core.ActionLeft},
		{k.P2Right, p2, core.ActionRight},
	}
	for _, d := range directions {
		if key.Matches(msg, d.binding) {
			return KeyResult{Slot: d.slot, Action: d.action, Held: true}, true
		}
	}

	switch {
	case key.Matches(msg, k.Quit):
		return KeyResult{Action: core.ActionQuit}, true
	case key.Matches(msg, k.Back):
		return KeyResult{Action: core.ActionBack}, true
	case key.Matches(msg, k.ResetLevel):
		return KeyResult{Action: core.ActionResetLevel}, true
	case key.Matches(msg, k.Emergency):
		return KeyResult{Action: core.ActionEmergency}, true
	case key.Matches(msg, k.ToggleMode):
		return KeyResult{Action: core.ActionToggleMode}, true
	case key.Matches(msg, k.Pause):
		return KeyResult{Action: core.ActionPause}, true
	case key.Matches(msg, k.NewSession):
		return KeyResult{Action: core.ActionRestart}, true
	}

	return KeyResult{}, false
}

// MenuKeyMap defines the key bindings for the catalog picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Dual   key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Dual, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Dual: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "1/2 players"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "best times"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
