package game

import "testing"

func TestEffects_CaptureShotsAndHits(t *testing.T) {
	ts := NewTestSim(
		WithPlayer(100, 300, 6),
		WithAgent(100, 100, 1),
	)
	fx := NewEffects()
	ts.Press(KeyFire)
	for i := 0; i < 200 && !ts.Round.Over(); i++ {
		ts.RunTicks(1)
		fx.Capture(ts.Round)
	}
	if len(fx.flashes) == 0 {
		t.Fatalf("no muzzle flash captured")
	}
	if fx.flashes[0].team != TeamPlayer {
		t.Fatalf("flash team: got %s, want player", fx.flashes[0].team)
	}
	if len(fx.sparks) != 1 || !fx.sparks[0].killed {
		t.Fatalf("want exactly one kill spark, got %d", len(fx.sparks))
	}
}

func TestEffects_UpdatePrunesExpired(t *testing.T) {
	fx := NewEffects()
	fx.flashes = append(fx.flashes, &MuzzleFlash{})
	fx.sparks = append(fx.sparks, &HitSpark{}, &HitSpark{killed: true})

	for i := 0; i < flashLifetime; i++ {
		fx.Update()
	}
	if len(fx.flashes) != 0 {
		t.Fatalf("flash should expire after %d ticks", flashLifetime)
	}
	for i := flashLifetime; i < sparkLifetime; i++ {
		fx.Update()
	}
	if len(fx.sparks) != 1 || !fx.sparks[0].killed {
		t.Fatalf("only the kill spark should outlive %d ticks, have %d", sparkLifetime, len(fx.sparks))
	}
	fx.Clear()
	if fx.Active() != 0 {
		t.Fatalf("clear left %d effects", fx.Active())
	}
}
