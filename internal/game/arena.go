package game

import "math"

// Arena is the rectangular play space every vehicle is clamped to.
type Arena struct {
	Width  float64
	Height float64
}

// Clamp limits a footprint of size (w, h) anchored at (x, y) to the arena,
// each axis independently.
func (a Arena) Clamp(x, y, w, h float64) (float64, float64) {
	return clampRange(x, 0, a.Width-w), clampRange(y, 0, a.Height-h)
}

// Contains reports whether r lies fully inside the arena.
func (a Arena) Contains(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= a.Width && r.Y+r.H <= a.Height
}

// Blocked reports whether r overlaps any live roster member other than self.
func (a Arena) Blocked(r Rect, self *Vehicle, roster *Roster) bool {
	return roster.FirstOverlap(r, self) != nil
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// Roster is the ordered set of live vehicles taking part in collision and
// combat this tick. Order is insertion order and is stable across removals.
type Roster struct {
	vehicles []*Vehicle
}

// NewRoster builds a roster from the given vehicles, in order.
func NewRoster(vs ...*Vehicle) *Roster {
	r := &Roster{vehicles: make([]*Vehicle, 0, len(vs))}
	for _, v := range vs {
		r.Add(v)
	}
	return r
}

// Add appends v if it is not already present.
func (r *Roster) Add(v *Vehicle) {
	if v == nil || r.Contains(v) {
		return
	}
	r.vehicles = append(r.vehicles, v)
}

// Remove deletes v, preserving the order of the remaining members.
func (r *Roster) Remove(v *Vehicle) bool {
	for i, m := range r.vehicles {
		if m == v {
			r.vehicles = append(r.vehicles[:i], r.vehicles[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports membership.
func (r *Roster) Contains(v *Vehicle) bool {
	for _, m := range r.vehicles {
		if m == v {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (r *Roster) Len() int { return len(r.vehicles) }

// Snapshot returns a copy of the member list. Callers that remove members
// while scanning must iterate a snapshot.
func (r *Roster) Snapshot() []*Vehicle {
	out := make([]*Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out
}

// FirstOverlap returns the first live member other than self whose footprint
// overlaps rect, or nil.
func (r *Roster) FirstOverlap(rect Rect, self *Vehicle) *Vehicle {
	for _, m := range r.vehicles {
		if m == self || !m.Alive() {
			continue
		}
		if rect.Overlaps(m.Rect()) {
			return m
		}
	}
	return nil
}

// CountTeam returns how many members belong to team.
func (r *Roster) CountTeam(team Team) int {
	n := 0
	for _, m := range r.vehicles {
		if m.team == team {
			n++
		}
	}
	return n
}
