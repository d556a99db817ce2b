package core

import "testing"

func TestInputFrameIntent(t *testing.T) {
	tests := []struct {
		name   string
		held   []Action
		dx, dy int
	}{
		{"nothing held", nil, 0, 0},
		{"right", []Action{ActionRight}, 1, 0},
		{"up left", []Action{ActionUp, ActionLeft}, -1, -1},
		{"down right", []Action{ActionDown, ActionRight}, 1, 1},
		{"opposites cancel", []Action{ActionLeft, ActionRight, ActionUp}, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.held {
				f.Hold(Slot1, a)
			}
			dx, dy := f.Intent(Slot1)
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Intent() = (%d, %d), expected (%d, %d)", dx, dy, tc.dx, tc.dy)
			}
			// Other slot is unaffected
			if dx2, dy2 := f.Intent(Slot2); dx2 != 0 || dy2 != 0 {
				t.Errorf("Slot2 intent = (%d, %d), expected (0, 0)", dx2, dy2)
			}
		})
	}
}

func TestInputFrameActions(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionPause)
	f.Hold(Slot2, ActionUp)
	if !f.Has(ActionPause) || !f.Holding(Slot2, ActionUp) {
		t.Fatal("Set/Hold did not register")
	}
	if f.Holding(Slot1, ActionUp) {
		t.Error("held directions should be per slot")
	}
}

func TestActionString(t *testing.T) {
	if ActionToggleMode.String() != "ToggleMode" {
		t.Errorf("unexpected name %q", ActionToggleMode.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unexpected name %q for an undefined action", Action(99).String())
	}
	if Slot2.String() != "Player 2" {
		t.Errorf("unexpected slot name %q", Slot2.String())
	}
}
