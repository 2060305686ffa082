package game

import (
	"math"
	"math/rand"
)

// Key is a logical input key. The window layer maps physical keys onto these.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyFire
	KeyRestart
	KeyCopy
	KeyQuit
)

// KeyState is a flat per-key query sampled once per tick.
type KeyState interface {
	Pressed(k Key) bool
}

// KeySet is a KeyState backed by a map. Headless runs and tests drive the
// player through it.
type KeySet map[Key]bool

func (ks KeySet) Pressed(k Key) bool { return ks[k] }

// Press sets the given keys down and everything else up.
func (ks KeySet) Press(keys ...Key) {
	for k := range ks {
		delete(ks, k)
	}
	for _, k := range keys {
		ks[k] = true
	}
}

// Intent is what a policy asks its vehicle to do this tick.
type Intent struct {
	DX, DY float64
	// Facing is applied only when Turn is set.
	Facing Direction
	Turn   bool
	Fire   bool
}

// ControlPolicy decides a vehicle's intent each tick.
type ControlPolicy interface {
	DecideIntent(now int64) Intent
}

// HumanPolicy turns key state into intent. Arrows and WASD move, the fire key
// shoots. Opposing keys cancel out.
type HumanPolicy struct {
	keys  KeyState
	speed float64
}

func NewHumanPolicy(keys KeyState, speed float64) *HumanPolicy {
	return &HumanPolicy{keys: keys, speed: speed}
}

func (h *HumanPolicy) DecideIntent(_ int64) Intent {
	k := h.keys
	left := k.Pressed(KeyLeft) || k.Pressed(KeyA)
	right := k.Pressed(KeyRight) || k.Pressed(KeyD)
	up := k.Pressed(KeyUp) || k.Pressed(KeyW)
	down := k.Pressed(KeyDown) || k.Pressed(KeyS)

	var in Intent
	switch {
	case left && !right:
		in.DX = -h.speed
	case right && !left:
		in.DX = h.speed
	}
	switch {
	case up && !down:
		in.DY = -h.speed
	case down && !up:
		in.DY = h.speed
	}
	if in.DX != 0 && in.DY != 0 {
		in.DX /= math.Sqrt2
		in.DY /= math.Sqrt2
	}

	// Horizontal wins on diagonals.
	switch {
	case in.DX < 0:
		in.Facing, in.Turn = DirLeft, true
	case in.DX > 0:
		in.Facing, in.Turn = DirRight, true
	case in.DY < 0:
		in.Facing, in.Turn = DirUp, true
	case in.DY > 0:
		in.Facing, in.Turn = DirDown, true
	}
	in.Fire = k.Pressed(KeyFire)
	return in
}

// WanderPolicy is the agents' random walk: keep driving in the current
// direction and pick a fresh one every interval.
type WanderPolicy struct {
	rng        *rand.Rand
	speed      float64
	dir        Direction
	intervalMs int64
	lastReroll int64

	fireMs      int64
	lastFireReq int64
}

// NewWanderPolicy draws the initial direction and the re-roll interval.
// fireMs > 0 makes the agent ask to fire that often.
func NewWanderPolicy(rng *rand.Rand, intervalsMs []int64, speed float64, fireMs, now int64) *WanderPolicy {
	w := &WanderPolicy{
		rng:         rng,
		speed:       speed,
		dir:         allDirections[rng.Intn(len(allDirections))],
		intervalMs:  1000,
		lastReroll:  now,
		fireMs:      fireMs,
		lastFireReq: now,
	}
	if len(intervalsMs) > 0 {
		w.intervalMs = intervalsMs[rng.Intn(len(intervalsMs))]
	}
	return w
}

// Direction returns the current wander heading.
func (w *WanderPolicy) Direction() Direction { return w.dir }

// IntervalMs returns the re-roll interval drawn at creation.
func (w *WanderPolicy) IntervalMs() int64 { return w.intervalMs }

func (w *WanderPolicy) DecideIntent(now int64) Intent {
	if now-w.lastReroll >= w.intervalMs {
		w.dir = allDirections[w.rng.Intn(len(allDirections))]
		w.lastReroll = now
	}
	sx, sy := w.dir.Unit()
	in := Intent{
		DX:     w.speed * sx,
		DY:     w.speed * sy,
		Facing: w.dir,
		Turn:   true,
	}
	if w.fireMs > 0 && now-w.lastFireReq >= w.fireMs {
		in.Fire = true
		w.lastFireReq = now
	}
	return in
}

// HoldPolicy keeps a vehicle parked. Used for target dummies.
type HoldPolicy struct{}

func (HoldPolicy) DecideIntent(int64) Intent { return Intent{} }

// AutopilotPolicy hunts the nearest live agent: it slides along the x axis
// until the shell lane crosses the target, then faces it and fires. It only
// ever shoots vertically.
type AutopilotPolicy struct {
	self    *Vehicle
	targets func() []*Vehicle
}

func NewAutopilotPolicy(self *Vehicle, targets func() []*Vehicle) *AutopilotPolicy {
	return &AutopilotPolicy{self: self, targets: targets}
}

func (a *AutopilotPolicy) DecideIntent(_ int64) Intent {
	target := a.nearest()
	if target == nil {
		return Intent{}
	}
	s := a.self
	laneL := s.x + s.shell.MuzzleShiftX
	laneR := laneL + s.shell.Width
	laneC := (laneL + laneR) / 2
	tr := target.Rect()
	tc, _ := tr.Center()

	var in Intent
	if laneR <= tr.X || laneL >= tr.X+tr.W {
		step := math.Min(s.speed, math.Abs(tc-laneC))
		if tc < laneC {
			in.DX, in.Facing = -step, DirLeft
		} else {
			in.DX, in.Facing = step, DirRight
		}
		in.Turn = true
		return in
	}

	in.Turn = true
	if tr.Y+tr.H <= s.y {
		in.Facing = DirUp
	} else {
		in.Facing = DirDown
	}
	// The facing must already point at the target before the shell leaves.
	in.Fire = s.facing == in.Facing
	return in
}

func (a *AutopilotPolicy) nearest() *Vehicle {
	var best *Vehicle
	bestD := math.Inf(1)
	sx, sy := a.self.Rect().Center()
	for _, t := range a.targets() {
		if t == a.self || !t.Alive() || t.team == a.self.team {
			continue
		}
		tx, ty := t.Rect().Center()
		d := math.Hypot(tx-sx, ty-sy)
		if d < bestD {
			best, bestD = t, d
		}
	}
	return best
}
