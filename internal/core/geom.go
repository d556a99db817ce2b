// Package core provides fundamental types and utilities for the maze game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Collision tolerances, in arena units.
const (
	// MotionTolerance is the overlap allowed before a move is rejected.
	// Keeps entities from wedging against walls at exact boundaries.
	MotionTolerance = 1

	// TouchTolerance is used for the advisory "touching a wall" feedback only.
	TouchTolerance = 0
)

// Point is a position in arena units.
type Point struct {
	X, Y int
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(other Point) float64 {
	return math.Hypot(float64(p.X-other.X), float64(p.Y-other.Y))
}

// Size is a width/height pair, used for arena bounds.
type Size struct {
	W, H int
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Square creates a square rectangle with its top-left corner at p.
func Square(p Point, side int) Rect {
	return Rect{X: p.X, Y: p.Y, W: side, H: side}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Overlaps reports whether a and b overlap by more than epsilon on both axes.
// With epsilon = 0 this is the standard AABB test. A positive epsilon lets
// rectangles touch or overlap by up to epsilon without being reported.
func Overlaps(a, b Rect, epsilon int) bool {
	overlapX := Min(a.Right(), b.Right()) - Max(a.X, b.X)
	if overlapX <= epsilon {
		return false
	}
	overlapY := Min(a.Bottom(), b.Bottom()) - Max(a.Y, b.Y)
	return overlapY > epsilon
}

// ContainsRect returns true if other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0 or +1 according to the sign of x.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
