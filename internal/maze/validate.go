package maze

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// LevelError describes a broken level invariant.
type LevelError struct {
	LevelID string
	Slot    int // Entity slot, -1 for the goal or the level as a whole
	Reason  string
	Err     error
}

func (e *LevelError) Error() string {
	where := "level"
	if e.Slot >= 0 {
		where = fmt.Sprintf("start %d", e.Slot+1)
	}
	return fmt.Sprintf("level %q: %s: %s", e.LevelID, where, e.Reason)
}

func (e *LevelError) Unwrap() error {
	return e.Err
}

// Validate checks that every start and the goal, as hitboxes of entitySize,
// lie inside the arena and do not overlap an obstacle beyond the motion tolerance.
func Validate(l *Level, entitySize int) error {
	if entitySize <= 0 {
		return &LevelError{LevelID: l.id, Slot: -1, Reason: fmt.Sprintf("entity size %d is not positive", entitySize), Err: ErrInvalidLevelData}
	}
	if entitySize > l.bounds.W || entitySize > l.bounds.H {
		return &LevelError{LevelID: l.id, Slot: -1, Reason: "arena smaller than an entity", Err: ErrInvalidLevelData}
	}

	var errs []error
	for i, p := range l.starts {
		if reason := placementProblem(l, p, entitySize); reason != "" {
			errs = append(errs, &LevelError{LevelID: l.id, Slot: i, Reason: reason, Err: ErrInvalidLevelData})
		}
	}
	if reason := placementProblem(l, l.goal, entitySize); reason != "" {
		errs = append(errs, &LevelError{LevelID: l.id, Slot: -1, Reason: "goal " + reason, Err: ErrInvalidLevelData})
	}
	return errors.Join(errs...)
}

// ValidateAll validates every level of a catalog.
func ValidateAll(levels []*Level, entitySize int) error {
	if len(levels) == 0 {
		return fmt.Errorf("empty catalog: %w", ErrInvalidLevelData)
	}
	var errs []error
	for _, l := range levels {
		if err := Validate(l, entitySize); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func placementProblem(l *Level, p core.Point, size int) string {
	box := core.Square(p, size)
	if !l.Arena().ContainsRect(box) {
		return fmt.Sprintf("(%d,%d) lies outside the %dx%d arena", p.X, p.Y, l.bounds.W, l.bounds.H)
	}
	for i, o := range l.obstacles {
		if core.Overlaps(box, o, core.MotionTolerance) {
			return fmt.Sprintf("(%d,%d) overlaps obstacle %d", p.X, p.Y, i+1)
		}
	}
	return ""
}
