package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	flashLifetime = 6  // ticks
	sparkLifetime = 14 // ticks
)

// MuzzleFlash is a short-lived visual burst where a shell left the barrel.
type MuzzleFlash struct {
	x, y  float64
	angle float64 // firing direction, radians
	team  Team
	age   int
}

// HitSpark is the impact flare of a shell striking a vehicle. Kills get a
// larger, longer burst.
type HitSpark struct {
	x, y   float64
	killed bool
	age    int
}

// Effects holds the transient visuals spawned from round events.
type Effects struct {
	flashes []*MuzzleFlash
	sparks  []*HitSpark
}

func NewEffects() *Effects {
	return &Effects{}
}

// Capture spawns visuals for the shots and hits of the round's latest tick.
func (fx *Effects) Capture(r *Round) {
	for _, p := range r.LastShots() {
		cx, cy := p.Rect().Center()
		vx, vy := p.Direction().Velocity(1)
		team := TeamAgent
		if r.player != nil {
			for _, own := range r.player.projectiles {
				if own == p {
					team = TeamPlayer
					break
				}
			}
		}
		fx.flashes = append(fx.flashes, &MuzzleFlash{x: cx, y: cy, angle: math.Atan2(vy, vx), team: team})
	}
	for _, h := range r.LastHits() {
		fx.sparks = append(fx.sparks, &HitSpark{x: h.X, y: h.Y, killed: h.Killed})
	}
}

// Update ages and prunes every effect.
func (fx *Effects) Update() {
	keptF := fx.flashes[:0]
	for _, f := range fx.flashes {
		f.age++
		if f.age < flashLifetime {
			keptF = append(keptF, f)
		}
	}
	fx.flashes = keptF

	keptS := fx.sparks[:0]
	for _, s := range fx.sparks {
		s.age++
		if s.age < s.lifetime() {
			keptS = append(keptS, s)
		}
	}
	fx.sparks = keptS
}

// Active returns the number of live effects.
func (fx *Effects) Active() int { return len(fx.flashes) + len(fx.sparks) }

// Clear drops every effect.
func (fx *Effects) Clear() {
	fx.flashes = fx.flashes[:0]
	fx.sparks = fx.sparks[:0]
}

func (s *HitSpark) lifetime() int {
	if s.killed {
		return sparkLifetime * 2
	}
	return sparkLifetime
}

// Draw renders all effects.
func (fx *Effects) Draw(screen *ebiten.Image) {
	for _, f := range fx.flashes {
		progress := float64(f.age) / float64(flashLifetime)
		alpha := uint8(255 * (1.0 - progress))
		sx, sy := float32(f.x), float32(f.y)

		// Outer glow.
		glowR := float32(9.0) * float32(1.0-progress*0.6)
		glowCol := color.RGBA{R: 255, G: 180, B: 40, A: uint8(float64(alpha) * 0.3)}
		if f.team == TeamPlayer {
			glowCol = color.RGBA{R: 140, G: 255, B: 120, A: uint8(float64(alpha) * 0.3)}
		}
		vector.DrawFilledCircle(screen, sx, sy, glowR, glowCol, false)

		// Bright core.
		coreR := float32(4.0) * float32(1.0-progress*0.5)
		vector.DrawFilledCircle(screen, sx, sy, coreR, color.RGBA{R: 255, G: 255, B: 220, A: alpha}, false)

		// Short flash line in firing direction.
		lineLen := 14.0 * (1.0 - progress*0.7)
		ex := float32(f.x + math.Cos(f.angle)*lineLen)
		ey := float32(f.y + math.Sin(f.angle)*lineLen)
		vector.StrokeLine(screen, sx, sy, ex, ey, 2,
			color.RGBA{R: 255, G: 240, B: 160, A: uint8(float64(alpha) * 0.7)}, false)
	}

	for _, s := range fx.sparks {
		life := s.lifetime()
		progress := float64(s.age) / float64(life)
		fade := float32(1.0 - progress*progress)
		sx, sy := float32(s.x), float32(s.y)

		maxR := float32(10)
		if s.killed {
			maxR = 26
		}
		r := maxR * float32(0.3+0.7*progress)
		vector.DrawFilledCircle(screen, sx, sy, r, color.RGBA{R: 255, G: 120, B: 30, A: uint8(120 * fade)}, false)
		vector.DrawFilledCircle(screen, sx, sy, r*0.45, color.RGBA{R: 255, G: 240, B: 180, A: uint8(220 * fade)}, false)

		// Debris streaks radiating outward.
		const nStreaks = 6
		for i := 0; i < nStreaks; i++ {
			a := float64(i) * 2 * math.Pi / nStreaks
			inner := float64(r) * 0.6
			outer := float64(r) * 1.3
			vector.StrokeLine(screen,
				sx+float32(math.Cos(a)*inner), sy+float32(math.Sin(a)*inner),
				sx+float32(math.Cos(a)*outer), sy+float32(math.Sin(a)*outer),
				1.2, color.RGBA{R: 255, G: 200, B: 90, A: uint8(200 * fade)}, false)
		}
	}
}
