package game

// Projectile is a shell in flight. Its velocity is fixed at spawn.
type Projectile struct {
	x, y   float64
	vx, vy float64
	dir    Direction
	w, h   float64
}

// NewProjectile creates a shell at (x, y) travelling along dir. The footprint
// is rotated with the direction: spec.Width x spec.Height when vertical,
// spec.Height x spec.Width when horizontal.
func NewProjectile(x, y float64, dir Direction, spec ProjectileSpec) *Projectile {
	vx, vy := dir.Velocity(spec.Speed)
	w, h := spec.Width, spec.Height
	if !dir.Vertical() {
		w, h = h, w
	}
	return &Projectile{x: x, y: y, vx: vx, vy: vy, dir: dir, w: w, h: h}
}

// Advance moves the shell one tick along its velocity.
func (p *Projectile) Advance() {
	p.x += p.vx
	p.y += p.vy
}

// Position returns the top-left corner.
func (p *Projectile) Position() (float64, float64) { return p.x, p.y }

// Direction returns the direction of travel.
func (p *Projectile) Direction() Direction { return p.dir }

// Rect returns the current footprint.
func (p *Projectile) Rect() Rect {
	return Rect{X: p.x, Y: p.y, W: p.w, H: p.h}
}

// OutOfBounds reports whether the shell has left an arena of the given size.
// The top edge test (y <= 0) is the classic rule; the other three edges are
// culled symmetrically so side and bottom exits do not leak.
func (p *Projectile) OutOfBounds(width, height float64) bool {
	return p.y <= 0 || p.x <= 0 || p.x+p.w >= width || p.y+p.h >= height
}
