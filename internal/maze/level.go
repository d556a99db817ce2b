// Package maze implements the maze navigation game: level model, movement
// and collision resolution, and the per-tick simulation with level progression.
package maze

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
)

var (
	// ErrIndexOutOfRange is returned when a level index is outside the catalog.
	ErrIndexOutOfRange = errors.New("level index out of range")

	// ErrInvalidLevelData is returned when authored level data breaks a level invariant.
	ErrInvalidLevelData = errors.New("invalid level data")
)

// Level is an immutable description of one playable arena.
type Level struct {
	id        string
	name      string
	bounds    core.Size
	obstacles []core.Rect
	starts    []core.Point
	goal      core.Point
}

// NewLevel creates a level. The obstacle and start slices are copied.
// At least one start position is required.
func NewLevel(id, name string, bounds core.Size, obstacles []core.Rect, starts []core.Point, goal core.Point) (*Level, error) {
	if len(starts) == 0 {
		return nil, &LevelError{LevelID: id, Slot: -1, Reason: "no start positions", Err: ErrInvalidLevelData}
	}
	if bounds.W <= 0 || bounds.H <= 0 {
		return nil, &LevelError{LevelID: id, Slot: -1, Reason: fmt.Sprintf("bounds %dx%d are empty", bounds.W, bounds.H), Err: ErrInvalidLevelData}
	}
	return &Level{
		id:        id,
		name:      name,
		bounds:    bounds,
		obstacles: append([]core.Rect(nil), obstacles...),
		starts:    append([]core.Point(nil), starts...),
		goal:      goal,
	}, nil
}

// MustLevel is like NewLevel but panics on error. Intended for static data and tests.
func MustLevel(id, name string, bounds core.Size, obstacles []core.Rect, starts []core.Point, goal core.Point) *Level {
	l, err := NewLevel(id, name, bounds, obstacles, starts, goal)
	if err != nil {
		panic(err)
	}
	return l
}

// ID returns the level identifier.
func (l *Level) ID() string { return l.id }

// Name returns the display name.
func (l *Level) Name() string { return l.name }

// Bounds returns the arena size.
func (l *Level) Bounds() core.Size { return l.bounds }

// Obstacles returns a copy of the obstacle list.
func (l *Level) Obstacles() []core.Rect {
	return append([]core.Rect(nil), l.obstacles...)
}

// ObstacleCount returns the number of obstacles.
func (l *Level) ObstacleCount() int { return len(l.obstacles) }

// Obstacle returns the i-th obstacle.
func (l *Level) Obstacle(i int) core.Rect { return l.obstacles[i] }

// Slots returns how many entity start positions the level defines.
func (l *Level) Slots() int { return len(l.starts) }

// Start returns the start position for an entity slot.
// The second result is false if the level has no start for that slot.
func (l *Level) Start(slot core.SlotID) (core.Point, bool) {
	if int(slot) < 0 || int(slot) >= len(l.starts) {
		return core.Point{}, false
	}
	return l.starts[slot], true
}

// Goal returns the goal position.
func (l *Level) Goal() core.Point { return l.goal }

// Arena returns the arena as a rectangle anchored at the origin.
func (l *Level) Arena() core.Rect {
	return core.NewRect(0, 0, l.bounds.W, l.bounds.H)
}

// LoadLevel returns the level at index.
// Fails with ErrIndexOutOfRange if index is outside [0, len(levels)).
func LoadLevel(levels []*Level, index int) (*Level, error) {
	if index < 0 || index >= len(levels) {
		return nil, fmt.Errorf("load level %d of %d: %w", index, len(levels), ErrIndexOutOfRange)
	}
	return levels[index], nil
}
