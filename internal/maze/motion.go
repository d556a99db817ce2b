package maze

import "github.com/vovakirdan/tui-maze/internal/core"

// Entity is a controllable square that moves through a level.
type Entity struct {
	ID     core.SlotID
	Pos    core.Point
	Size   int // Side length of the square hitbox
	Speed  int // Units moved per tick per unit of intent
	Active bool
}

// Hitbox returns the entity's hitbox at its current position.
func (e Entity) Hitbox() core.Rect {
	return core.Square(e.Pos, e.Size)
}

// Resolver validates entity motion against level geometry.
type Resolver struct {
	// Tolerance is the overlap with an obstacle allowed before a move is rejected.
	Tolerance int
}

// DefaultResolver uses the standard motion tolerance.
var DefaultResolver = Resolver{Tolerance: core.MotionTolerance}

// ResolveMove computes the entity's next position with the default resolver.
func ResolveMove(level *Level, e Entity, dx, dy int) core.Point {
	return DefaultResolver.Resolve(level, e, dx, dy)
}

// Resolve returns where the entity ends up after applying intent (dx, dy).
//
// Intent components are reduced to -1, 0 or +1 and scaled by the entity's
// speed. The candidate is clamped into the arena first and then tested
// against every obstacle. A colliding candidate rejects the whole move and
// the current position is returned; there is no sliding along one axis.
func (r Resolver) Resolve(level *Level, e Entity, dx, dy int) core.Point {
	dx, dy = core.Sign(dx), core.Sign(dy)
	if dx == 0 && dy == 0 {
		return e.Pos
	}

	bounds := level.Bounds()
	candidate := e.Pos.Add(dx*e.Speed, dy*e.Speed)
	candidate.X = core.Clamp(candidate.X, 0, bounds.W-e.Size)
	candidate.Y = core.Clamp(candidate.Y, 0, bounds.H-e.Size)

	box := core.Square(candidate, e.Size)
	for _, o := range level.obstacles {
		if core.Overlaps(box, o, r.Tolerance) {
			return e.Pos
		}
	}
	return candidate
}

// Touching reports whether the entity's hitbox overlaps any obstacle at all.
// Advisory only; motion is never rejected on this basis.
func Touching(level *Level, e Entity) bool {
	box := e.Hitbox()
	for _, o := range level.obstacles {
		if core.Overlaps(box, o, core.TouchTolerance) {
			return true
		}
	}
	return false
}

// ReachedGoal reports whether the entity is closer to the goal than its own size.
func ReachedGoal(level *Level, e Entity) bool {
	return e.Pos.Dist(level.Goal()) < float64(e.Size)
}
