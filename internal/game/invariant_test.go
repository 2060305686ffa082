package game

import (
	"fmt"
	"testing"
)

// --- Invariant helpers ---

// checkNoOverlaps fails if any two live roster members overlap.
func checkNoOverlaps(t *testing.T, ts *TestSim) {
	t.Helper()
	live := ts.Round.Roster().Snapshot()
	for i := range live {
		for j := i + 1; j < len(live); j++ {
			if live[i].Rect().Overlaps(live[j].Rect()) {
				t.Fatalf("tick %d: %s %+v overlaps %s %+v", ts.CurrentTick(),
					live[i].Label(), live[i].Rect(), live[j].Label(), live[j].Rect())
			}
		}
	}
}

// checkInBounds fails if any vehicle footprint leaves the arena.
func checkInBounds(t *testing.T, ts *TestSim) {
	t.Helper()
	arena := ts.Round.Arena()
	for _, v := range append([]*Vehicle{ts.Player()}, ts.Agents()...) {
		if !arena.Contains(v.Rect()) {
			t.Fatalf("tick %d: %s out of bounds at %+v", ts.CurrentTick(), v.Label(), v.Rect())
		}
	}
}

// checkHealthBounds fails on health outside [0, max] or a live/health mismatch.
func checkHealthBounds(t *testing.T, ts *TestSim) {
	t.Helper()
	for _, v := range append([]*Vehicle{ts.Player()}, ts.Agents()...) {
		h := v.Health()
		if h < 0 || h > v.MaxHealth() {
			t.Fatalf("tick %d: %s health %d outside [0,%d]", ts.CurrentTick(), v.Label(), h, v.MaxHealth())
		}
		if v.Alive() != (h > 0) {
			t.Fatalf("tick %d: %s alive=%v with health %d", ts.CurrentTick(), v.Label(), v.Alive(), h)
		}
		if !v.Alive() && ts.Round.Roster().Contains(v) {
			t.Fatalf("tick %d: dead %s still in roster", ts.CurrentTick(), v.Label())
		}
	}
}

// --- Invariant tests ---

func TestInvariant_WanderingPackNeverOverlapsOrLeaves(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 99} {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			ts := NewTestSim(WithSeed(seed), WithSpawnedAgents(40))
			ts.Press(KeyLeft, KeyUp)
			for i := 0; i < 600; i++ {
				if i == 300 {
					ts.Press(KeyRight, KeyDown)
				}
				ts.RunTicks(1)
				checkNoOverlaps(t, ts)
				checkInBounds(t, ts)
			}
		})
	}
}

func TestInvariant_CrossfireKeepsHealthConsistent(t *testing.T) {
	ts := NewTestSim(
		WithSeed(17),
		WithAgentFire(400),
		WithPlayer(460, 300, 6),
		WithSpawnedAgents(20),
		WithAutopilot(),
	)
	for i := 0; i < 1500 && !ts.Round.Over(); i++ {
		ts.RunTicks(1)
		checkHealthBounds(t, ts)
		checkNoOverlaps(t, ts)
	}
	out := ts.Round.Outcome()
	switch ts.Round.Phase() {
	case PhaseWon:
		if out.Outcome != OutcomePlayerVictory {
			t.Fatalf("won phase with outcome %s", out.Outcome)
		}
	case PhaseLost:
		if out.Outcome != OutcomePlayerDefeat {
			t.Fatalf("lost phase with outcome %s", out.Outcome)
		}
	}
}

func TestInvariant_ShellsNeverOutliveTheArena(t *testing.T) {
	ts := NewTestSim(WithSeed(5), WithAgentFire(200), WithSpawnedAgents(10))
	arena := ts.Round.Arena()
	for i := 0; i < 900; i++ {
		ts.RunTicks(1)
		for _, v := range ts.Round.Roster().Snapshot() {
			for _, p := range v.Projectiles() {
				if p.OutOfBounds(arena.Width, arena.Height) {
					t.Fatalf("tick %d: out-of-bounds shell survived the tick: %+v", ts.CurrentTick(), p.Rect())
				}
			}
		}
	}
}
