package game

import "math"

// Rect is an axis-aligned footprint anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Direction is one of the four cardinal facings.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// allDirections is the uniform draw set for wander re-rolls.
var allDirections = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Angle returns the sprite rotation in degrees: 0/90/180/270 map to
// down/right/up/left.
func (d Direction) Angle() float64 {
	switch d {
	case DirDown:
		return 0
	case DirRight:
		return 90
	case DirUp:
		return 180
	case DirLeft:
		return 270
	default:
		return 0
	}
}

// Unit returns the (sin, cos) step of the direction's angle. Screen y grows
// downward, so DirUp yields (≈0, -1).
func (d Direction) Unit() (float64, float64) {
	rad := d.Angle() * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}

// Velocity returns the exact axis-aligned vector for speed along d.
func (d Direction) Velocity(speed float64) (float64, float64) {
	switch d {
	case DirUp:
		return 0, -speed
	case DirDown:
		return 0, speed
	case DirLeft:
		return -speed, 0
	case DirRight:
		return speed, 0
	default:
		return 0, 0
	}
}

// Vertical reports whether d travels along the y axis.
func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}
