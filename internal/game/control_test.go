package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestHumanPolicy_OpposingKeysCancel(t *testing.T) {
	keys := KeySet{}
	h := NewHumanPolicy(keys, 2)

	keys.Press(KeyLeft, KeyRight)
	in := h.DecideIntent(0)
	if in.DX != 0 || in.DY != 0 || in.Turn {
		t.Fatalf("left+right should cancel, got %+v", in)
	}

	keys.Press(KeyW, KeyDown)
	in = h.DecideIntent(0)
	if in.DX != 0 || in.DY != 0 {
		t.Fatalf("up+down should cancel, got %+v", in)
	}
}

func TestHumanPolicy_DiagonalNormalised(t *testing.T) {
	keys := KeySet{}
	h := NewHumanPolicy(keys, 2)
	keys.Press(KeyUp, KeyRight)
	in := h.DecideIntent(0)
	if got := math.Hypot(in.DX, in.DY); math.Abs(got-2) > 1e-9 {
		t.Fatalf("diagonal magnitude: got %.4f, want 2", got)
	}
	if in.Facing != DirRight || !in.Turn {
		t.Fatalf("horizontal should win facing, got %s", in.Facing)
	}
}

func TestHumanPolicy_WASDMatchesArrows(t *testing.T) {
	keys := KeySet{}
	h := NewHumanPolicy(keys, 2)
	pairs := [][2]Key{{KeyUp, KeyW}, {KeyDown, KeyS}, {KeyLeft, KeyA}, {KeyRight, KeyD}}
	for _, p := range pairs {
		keys.Press(p[0])
		a := h.DecideIntent(0)
		keys.Press(p[1])
		b := h.DecideIntent(0)
		if a != b {
			t.Fatalf("keys %d and %d differ: %+v vs %+v", p[0], p[1], a, b)
		}
	}
}

func TestHumanPolicy_FireWithoutMovingKeepsFacing(t *testing.T) {
	keys := KeySet{}
	h := NewHumanPolicy(keys, 2)
	keys.Press(KeyFire)
	in := h.DecideIntent(0)
	if !in.Fire || in.Turn {
		t.Fatalf("fire only should not turn, got %+v", in)
	}
}

func TestWanderPolicy_IntervalFromSet(t *testing.T) {
	set := []int64{1000, 1200, 500, 800, 1500}
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		w := NewWanderPolicy(rng, set, 2, 0, 0)
		ok := false
		for _, v := range set {
			if w.IntervalMs() == v {
				ok = true
			}
		}
		if !ok {
			t.Fatalf("interval %d not in set", w.IntervalMs())
		}
	}
}

func TestWanderPolicy_KeepsDirectionUntilInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	w := NewWanderPolicy(rng, []int64{500}, 2, 0, 0)
	start := w.Direction()
	for now := int64(0); now < 500; now += 16 {
		in := w.DecideIntent(now)
		if in.Facing != start {
			t.Fatalf("direction changed before the interval at %dms", now)
		}
		dx, dy := start.Velocity(2)
		if math.Abs(in.DX-dx) > 1e-9 || math.Abs(in.DY-dy) > 1e-9 {
			t.Fatalf("step: got (%.3f,%.3f), want (%.3f,%.3f)", in.DX, in.DY, dx, dy)
		}
	}
}

func TestWanderPolicy_RerollsEveryInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	w := NewWanderPolicy(rng, []int64{100}, 2, 0, 0)
	seen := map[Direction]bool{}
	for now := int64(0); now < 100*200; now += 100 {
		seen[w.DecideIntent(now).Facing] = true
	}
	if len(seen) != 4 {
		t.Fatalf("200 re-rolls should visit every direction, saw %d", len(seen))
	}
}

func TestWanderPolicy_FireRequests(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := NewWanderPolicy(rng, nil, 2, 700, 0)
	if w.IntervalMs() != 1000 {
		t.Fatalf("empty interval set should fall back to 1000ms")
	}
	fires := 0
	for now := int64(0); now <= 2100; now += 100 {
		if w.DecideIntent(now).Fire {
			fires++
		}
	}
	if fires != 3 {
		t.Fatalf("fire requests in 2.1s at 700ms: got %d, want 3", fires)
	}
}

func TestAutopilotPolicy_AlignsThenFires(t *testing.T) {
	cfg := DefaultConfig()
	self := NewVehicle(0, "P", TeamPlayer, 300, 400, cfg.Player, cfg.Projectile, nil)
	target := NewVehicle(1, "A0", TeamAgent, 100, 100, cfg.Agent, cfg.Projectile, HoldPolicy{})
	all := []*Vehicle{self, target}
	ap := NewAutopilotPolicy(self, func() []*Vehicle { return all })
	self.SetPolicy(ap)

	in := ap.DecideIntent(0)
	if in.DX >= 0 || in.Facing != DirLeft || in.Fire {
		t.Fatalf("should slide left without firing, got %+v", in)
	}

	arena := Arena{Width: 960, Height: 640}
	roster := NewRoster(all...)
	fired := false
	for tick := int64(1); tick < 400 && !fired; tick++ {
		fired = self.Drive(ap.DecideIntent(tick*16), tick*16, arena, roster) != nil
	}
	if !fired {
		t.Fatalf("autopilot never fired")
	}
	if self.Facing() != DirUp {
		t.Fatalf("should fire facing up, got %s", self.Facing())
	}
	x, _ := self.Position()
	laneL := x + cfg.Projectile.MuzzleShiftX
	if laneL+cfg.Projectile.Width <= 100 || laneL >= 131 {
		t.Fatalf("fired with lane [%.0f,%.0f] off the target", laneL, laneL+cfg.Projectile.Width)
	}
}

func TestAutopilotPolicy_IdleWithoutTargets(t *testing.T) {
	cfg := DefaultConfig()
	self := NewVehicle(0, "P", TeamPlayer, 300, 400, cfg.Player, cfg.Projectile, nil)
	ap := NewAutopilotPolicy(self, func() []*Vehicle { return []*Vehicle{self} })
	if in := ap.DecideIntent(0); in != (Intent{}) {
		t.Fatalf("no targets should mean no intent, got %+v", in)
	}
}
