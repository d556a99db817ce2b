package maze

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/core"
)

func TestValidateAcceptsGoodLevels(t *testing.T) {
	for _, l := range []*Level{wallLevel(), mazeLevel(), sprintLevel("a")} {
		if err := Validate(l, 20); err != nil {
			t.Errorf("Validate(%s) = %v, expected nil", l.ID(), err)
		}
	}
}

func TestValidateReportsPlacementProblems(t *testing.T) {
	tests := []struct {
		name     string
		level    *Level
		wantSlot int
	}{
		{
			name: "start inside wall",
			level: MustLevel("l", "", core.Size{W: 400, H: 300},
				[]core.Rect{core.NewRect(100, 0, 20, 180)},
				[]core.Point{{X: 95, Y: 40}},
				core.Point{X: 360, Y: 260}),
			wantSlot: 0,
		},
		{
			name: "second start outside arena",
			level: MustLevel("l", "", core.Size{W: 400, H: 300},
				nil,
				[]core.Point{{X: 40, Y: 40}, {X: 390, Y: 40}},
				core.Point{X: 360, Y: 260}),
			wantSlot: 1,
		},
		{
			name: "goal outside arena",
			level: MustLevel("l", "", core.Size{W: 400, H: 300},
				nil,
				[]core.Point{{X: 40, Y: 40}},
				core.Point{X: 390, Y: 290}),
			wantSlot: -1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.level, 20)
			if !errors.Is(err, ErrInvalidLevelData) {
				t.Fatalf("Validate() = %v, expected ErrInvalidLevelData", err)
			}
			var le *LevelError
			if !errors.As(err, &le) {
				t.Fatalf("Validate() = %v, expected a LevelError", err)
			}
			if le.Slot != tc.wantSlot {
				t.Errorf("LevelError.Slot = %d, expected %d", le.Slot, tc.wantSlot)
			}
		})
	}
}

func TestValidateTouchingWallIsAllowed(t *testing.T) {
	l := MustLevel("flush", "", core.Size{W: 400, H: 300},
		[]core.Rect{core.NewRect(100, 0, 20, 180)},
		[]core.Point{{X: 80, Y: 40}, {X: 81, Y: 80}},
		core.Point{X: 360, Y: 260})

	if err := Validate(l, 20); err != nil {
		t.Errorf("starts within the motion tolerance should validate: %v", err)
	}
}

func TestValidateEntitySize(t *testing.T) {
	if err := Validate(wallLevel(), 0); !errors.Is(err, ErrInvalidLevelData) {
		t.Errorf("size 0: %v, expected ErrInvalidLevelData", err)
	}
	if err := Validate(wallLevel(), 500); !errors.Is(err, ErrInvalidLevelData) {
		t.Errorf("size 500: %v, expected ErrInvalidLevelData", err)
	}
}

func TestValidateAll(t *testing.T) {
	if err := ValidateAll(nil, 20); !errors.Is(err, ErrInvalidLevelData) {
		t.Errorf("empty catalog: %v, expected ErrInvalidLevelData", err)
	}

	bad := MustLevel("bad", "", core.Size{W: 100, H: 100}, nil, []core.Point{{X: 90, Y: 90}}, core.Point{})
	err := ValidateAll([]*Level{wallLevel(), bad}, 20)
	if err == nil {
		t.Fatal("expected an error for the bad level")
	}
	var le *LevelError
	if !errors.As(err, &le) || le.LevelID != "bad" {
		t.Errorf("ValidateAll() = %v, expected error for level %q", err, "bad")
	}
}
