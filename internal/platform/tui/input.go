package tui

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
)

const (
	// DefaultHold is how long a direction stays held after an auto-repeat.
	DefaultHold = 120 * time.Millisecond

	// DefaultFirstHold is how long a fresh press stays held. Terminals wait
	// 250-500ms before the first auto-repeat.
	DefaultFirstHold = 500 * time.Millisecond
)

type heldKey struct {
	slot   core.SlotID
	action core.Action
}

// HeldKeys is the input state shared between the key source and the tick.
//
// Terminals report key presses (and auto-repeats) but never key releases,
// so a direction counts as held until hold has passed since its last press.
// A press of a key that is not held yet gets the longer first window, so the
// gap before the terminal's first repeat does not release it.
// One-shot controls queue until the next Snapshot.
type HeldKeys struct {
	mu      sync.Mutex
	hold    time.Duration
	first   time.Duration
	until   map[heldKey]time.Time
	pending []core.Action
}

// NewHeldKeys creates an input state with the given repeat and first-press
// windows. Zero selects the defaults; first is never shorter than hold.
func NewHeldKeys(hold, first time.Duration) *HeldKeys {
	if hold <= 0 {
		hold = DefaultHold
	}
	if first <= 0 {
		first = DefaultFirstHold
	}
	return &HeldKeys{
		hold:  hold,
		first: max(first, hold),
		until: make(map[heldKey]time.Time),
	}
}

// Press marks a direction as held from now. A repeat of a held key extends
// it by the hold window, a fresh press by the first-press window.
// Pressing a direction releases its opposite for the same slot.
func (h *HeldKeys) Press(slot core.SlotID, action core.Action, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if opp, ok := opposite(action); ok {
		delete(h.until, heldKey{slot, opp})
	}
	key := heldKey{slot, action}
	d := h.first
	if until, ok := h.until[key]; ok && now.Before(until) {
		d = h.hold
	}
	h.until[key] = now.Add(d)
}

// Trigger queues a one-shot control for the next tick.
func (h *HeldKeys) Trigger(action core.Action) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pending = append(h.pending, action)
}

// ReleaseAll drops every held direction and queued control.
func (h *HeldKeys) ReleaseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.until)
	h.pending = h.pending[:0]
}

// Snapshot returns the input frame for one tick and consumes queued controls.
// Expired directions are pruned.
func (h *HeldKeys) Snapshot(now time.Time) core.InputFrame {
	h.mu.Lock()
	defer h.mu.Unlock()

	frame := core.NewInputFrame()
	for k, until := range h.until {
		if !now.Before(until) {
			delete(h.until, k)
			continue
		}
		frame.Hold(k.slot, k.action)
	}
	for _, a := range h.pending {
		frame.Set(a)
	}
	h.pending = h.pending[:0]
	return frame
}

func opposite(a core.Action) (core.Action, bool) {
	switch a {
	case core.ActionUp:
		return core.ActionDown, true
	case core.ActionDown:
		return core.ActionUp, true
	case core.ActionLeft:
		return core.ActionRight, true
	case core.ActionRight:
		return core.ActionLeft, true
	}
	return core.ActionNone, false
}
