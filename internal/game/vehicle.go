package game

// Team distinguishes the human-driven tank from the autonomous pack.
type Team int

const (
	TeamPlayer Team = iota
	TeamAgent
)

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Vehicle is a tank on the arena floor. Movement, firing and hit resolution
// all go through it; what it wants to do each tick comes from its policy.
type Vehicle struct {
	id    int
	label string
	team  Team

	x, y  float64 // top-left
	w, h  float64
	speed float64

	facing    Direction
	health    int
	maxHealth int
	alive     bool

	reloadMs   int64
	lastFireMs int64
	shell      ProjectileSpec

	projectiles []*Projectile
	policy      ControlPolicy

	stats CombatStats
}

// NewVehicle creates a live vehicle facing up at (x, y).
func NewVehicle(id int, label string, team Team, x, y float64, spec VehicleSpec, shell ProjectileSpec, policy ControlPolicy) *Vehicle {
	return &Vehicle{
		id:        id,
		label:     label,
		team:      team,
		x:         x,
		y:         y,
		w:         spec.Width,
		h:         spec.Height,
		speed:     spec.Speed,
		facing:    DirUp,
		health:    spec.Health,
		maxHealth: spec.Health,
		alive:     spec.Health > 0,
		reloadMs:  spec.ReloadMs,
		shell:     shell,
		policy:    policy,
	}
}

func (v *Vehicle) ID() int { return v.id }
func (v *Vehicle) Label() string { return v.label }
func (v *Vehicle) Team() Team { return v.team }
func (v *Vehicle) Position() (float64, float64) { return v.x, v.y }
func (v *Vehicle) Size() (float64, float64) { return v.w, v.h }
func (v *Vehicle) Facing() Direction { return v.facing }
func (v *Vehicle) Health() int { return v.health }
func (v *Vehicle) MaxHealth() int { return v.maxHealth }
func (v *Vehicle) Alive() bool { return v.alive }
func (v *Vehicle) Speed() float64 { return v.speed }
func (v *Vehicle) Policy() ControlPolicy { return v.policy }
func (v *Vehicle) Stats() CombatStats { return v.stats }
func (v *Vehicle) Projectiles() []*Projectile { return v.projectiles }
func (v *Vehicle) SetPolicy(p ControlPolicy) { v.policy = p }
func (v *Vehicle) setPosition(x, y float64) { v.x, v.y = x, y }

// Rect returns the footprint at the current position.
func (v *Vehicle) Rect() Rect {
	return Rect{X: v.x, Y: v.y, W: v.w, H: v.h}
}

// Drive applies one tick of intent: facing, movement, then fire. It returns
// the shell fired this tick, if any.
func (v *Vehicle) Drive(in Intent, now int64, arena Arena, roster *Roster) *Projectile {
	if !v.alive {
		return nil
	}
	// Facing follows intent even when the move itself is refused.
	if in.Turn {
		v.facing = in.Facing
	}
	if in.DX != 0 || in.DY != 0 {
		v.AttemptMove(in.DX, in.DY, arena, roster)
	}
	if in.Fire {
		if p, ok := v.TryFire(now); ok {
			return p
		}
	}
	return nil
}

// AttemptMove proposes a displacement of (dx, dy). The combined target
// footprint is tested against every other live roster member and the whole
// move is refused on any overlap. Otherwise x and y are clamped to the arena
// independently and committed. The return value reports whether the move was
// committed (a clamped move still counts).
//
// The clamped footprint is tested too: a diagonal move pinned against a wall
// can end up somewhere neither the start nor the proposed rect covered.
func (v *Vehicle) AttemptMove(dx, dy float64, arena Arena, roster *Roster) bool {
	if !v.alive {
		return false
	}
	nx, ny := v.x+dx, v.y+dy
	proposed := Rect{X: nx, Y: ny, W: v.w, H: v.h}
	if arena.Blocked(proposed, v, roster) {
		return false
	}
	cx, cy := arena.Clamp(nx, ny, v.w, v.h)
	if (cx != nx || cy != ny) && arena.Blocked(Rect{X: cx, Y: cy, W: v.w, H: v.h}, v, roster) {
		return false
	}
	v.x, v.y = cx, cy
	return true
}

// CanFire reports whether the reload interval has elapsed at now.
func (v *Vehicle) CanFire(now int64) bool {
	return v.alive && now-v.lastFireMs >= v.reloadMs
}

// TryFire spawns a shell at the turret mouth if the cooldown allows.
func (v *Vehicle) TryFire(now int64) (*Projectile, bool) {
	if !v.CanFire(now) {
		return nil, false
	}
	ox, oy := muzzleOffset(v.facing, v.shell)
	p := NewProjectile(v.x+ox, v.y+oy, v.facing, v.shell)
	v.projectiles = append(v.projectiles, p)
	v.lastFireMs = now
	v.stats.Shots++
	return p, true
}

// muzzleOffset returns where a fresh shell appears relative to the vehicle's
// top-left. Up/down and left/right use different multiples of the shift.
func muzzleOffset(d Direction, s ProjectileSpec) (float64, float64) {
	sx, sy := s.MuzzleShiftX, s.MuzzleShiftY
	switch d {
	case DirUp:
		return sx, -sy
	case DirDown:
		return sx, 3 * sy
	case DirLeft:
		return -sx, 1.4 * sy
	case DirRight:
		return 3 * sx, 1.4 * sy
	default:
		return 0, 0
	}
}

// AdvanceProjectiles moves every owned shell one tick.
func (v *Vehicle) AdvanceProjectiles() {
	for _, p := range v.projectiles {
		p.Advance()
	}
}

// CullProjectiles drops shells that have left the arena and returns how many
// were removed.
func (v *Vehicle) CullProjectiles(arena Arena) int {
	kept := v.projectiles[:0]
	for _, p := range v.projectiles {
		if !p.OutOfBounds(arena.Width, arena.Height) {
			kept = append(kept, p)
		}
	}
	removed := len(v.projectiles) - len(kept)
	for i := len(kept); i < len(v.projectiles); i++ {
		v.projectiles[i] = nil
	}
	v.projectiles = kept
	return removed
}

// Hit is one resolved shell impact.
type Hit struct {
	Shooter *Vehicle
	Target  *Vehicle
	X, Y    float64 // impact point (shell center)
	Killed  bool
}

// ResolveHits tests every owned shell against every other live roster member.
// The first overlapping target takes one point of damage and the shell is
// spent; a target whose health reaches zero is removed from the roster.
// Removals are collected during the scan and applied afterwards.
func (v *Vehicle) ResolveHits(roster *Roster) []Hit {
	if len(v.projectiles) == 0 {
		return nil
	}
	var hits []Hit
	spent := make(map[*Projectile]bool)
	shells := make([]*Projectile, len(v.projectiles))
	copy(shells, v.projectiles)

	for _, p := range shells {
		pr := p.Rect()
		for _, target := range roster.Snapshot() {
			if target == v || !target.alive {
				continue
			}
			if !pr.Overlaps(target.Rect()) {
				continue
			}
			spent[p] = true
			killed := target.TakeHit(1)
			if killed {
				roster.Remove(target)
				v.stats.Kills++
			}
			v.stats.Hits++
			cx, cy := pr.Center()
			hits = append(hits, Hit{Shooter: v, Target: target, X: cx, Y: cy, Killed: killed})
			break
		}
	}

	if len(spent) > 0 {
		kept := v.projectiles[:0]
		for _, p := range v.projectiles {
			if !spent[p] {
				kept = append(kept, p)
			}
		}
		v.projectiles = kept
	}
	return hits
}

// TakeHit applies damage and reports whether this hit killed the vehicle.
// Health never drops below zero; a dead vehicle's shells are discarded.
func (v *Vehicle) TakeHit(damage int) bool {
	if !v.alive {
		return false
	}
	v.health -= damage
	v.stats.DamageTaken += damage
	if v.health > 0 {
		return false
	}
	v.health = 0
	v.alive = false
	v.projectiles = nil
	return true
}
