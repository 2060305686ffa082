package game

import "testing"

func TestDetermineRoundOutcome_Inconclusive(t *testing.T) {
	p := testVehicle(0, TeamPlayer, 0, 0)
	a := testVehicle(1, TeamAgent, 100, 0)
	got := DetermineRoundOutcome(p, []*Vehicle{a})
	if got.Outcome != OutcomeInconclusive || got.Description != "agents_remaining" {
		t.Fatalf("got %+v", got)
	}
}

func TestDetermineRoundOutcome_FlawlessVictory(t *testing.T) {
	p := testVehicle(0, TeamPlayer, 0, 0)
	a := testVehicle(1, TeamAgent, 100, 0)
	a.TakeHit(1)
	got := DetermineRoundOutcome(p, []*Vehicle{a})
	if got.Outcome != OutcomePlayerVictory || got.Description != "flawless_victory" {
		t.Fatalf("got %+v", got)
	}
	if got.AgentsDestroyed != 1 || got.AgentsTotal != 1 {
		t.Fatalf("counts: %+v", got)
	}
}

func TestDetermineRoundOutcome_DamagedVictory(t *testing.T) {
	p := testVehicle(0, TeamPlayer, 0, 0)
	p.TakeHit(2)
	got := DetermineRoundOutcome(p, nil)
	if got.Outcome != OutcomePlayerVictory || got.Description != "victory_all_agents_destroyed" {
		t.Fatalf("got %+v", got)
	}
	if got.PlayerHealth != 4 || got.PlayerMaxHealth != 6 {
		t.Fatalf("health: %+v", got)
	}
}

func TestDetermineRoundOutcome_Defeat(t *testing.T) {
	p := testVehicle(0, TeamPlayer, 0, 0)
	a := testVehicle(1, TeamAgent, 100, 0)
	p.TakeHit(6)
	got := DetermineRoundOutcome(p, []*Vehicle{a})
	if got.Outcome != OutcomePlayerDefeat || got.Outcome.String() != "player_defeat" {
		t.Fatalf("got %+v", got)
	}
}
