package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // move up
	ActionDown              // move down
	ActionLeft              // move left
	ActionRight             // move right
	ActionResetLevel        // R - reload the current level
	ActionEmergency         // E - snap entities back to their starts
	ActionToggleMode        // M - switch between one and two players
	ActionRestart           // N - start a fresh session from level 1
	ActionPause             // P - pause/unpause game
	ActionBack              // B, Escape - go back to menu
	ActionQuit              // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionResetLevel:
		return "ResetLevel"
	case ActionEmergency:
		return "Emergency"
	case ActionToggleMode:
		return "ToggleMode"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// SlotID identifies an entity slot. Each slot has its own fixed control scheme.
type SlotID int

const (
	Slot1 SlotID = iota // WASD
	Slot2               // arrow keys
)

// MaxSlots is the number of entity slots a session supports.
const MaxSlots = 2

// String returns a human-readable name for the slot.
func (s SlotID) String() string {
	switch s {
	case Slot1:
		return "Player 1"
	case Slot2:
		return "Player 2"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot for a single simulation tick.
// Directions are held state per slot; controls are one-shot session actions.
type InputFrame struct {
	// Held maps each slot to the directions held at the start of the tick.
	Held map[SlotID]map[Action]bool

	// Actions holds one-shot session controls triggered since the last tick.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held:    make(map[SlotID]map[Action]bool),
		Actions: make(map[Action]bool),
	}
}

// Set marks a one-shot action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given one-shot action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Hold marks a direction as held for the given slot.
func (f *InputFrame) Hold(slot SlotID, a Action) {
	if f.Held == nil {
		f.Held = make(map[SlotID]map[Action]bool)
	}
	if f.Held[slot] == nil {
		f.Held[slot] = make(map[Action]bool)
	}
	f.Held[slot][a] = true
}

// Holding returns true if the slot holds the given direction.
func (f InputFrame) Holding(slot SlotID, a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[slot][a]
}

// Intent returns the directional intent of a slot, each component in {-1, 0, +1}.
// Opposite directions held together cancel out.
func (f InputFrame) Intent(slot SlotID) (dx, dy int) {
	if f.Holding(slot, ActionLeft) {
		dx--
	}
	if f.Holding(slot, ActionRight) {
		dx++
	}
	if f.Holding(slot, ActionUp) {
		dy--
	}
	if f.Holding(slot, ActionDown) {
		dy++
	}
	return dx, dy
}
