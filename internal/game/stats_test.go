package game

import (
	"math"
	"testing"
)

// --- CombatStats ---

func TestCombatStats_AccuracyNoShots(t *testing.T) {
	var cs CombatStats
	if cs.Accuracy() != 0 {
		t.Fatalf("expected 0 accuracy before first shot, got %.2f", cs.Accuracy())
	}
}

func TestCombatStats_Accuracy(t *testing.T) {
	cs := CombatStats{Shots: 4, Hits: 3}
	if math.Abs(cs.Accuracy()-0.75) > 1e-9 {
		t.Fatalf("expected 0.75, got %.4f", cs.Accuracy())
	}
}

func TestCombatStats_Add(t *testing.T) {
	a := CombatStats{Shots: 2, Hits: 1, Kills: 1, DamageTaken: 3}
	b := CombatStats{Shots: 5, Hits: 2, Kills: 0, DamageTaken: 1}
	got := a.Add(b)
	want := CombatStats{Shots: 7, Hits: 3, Kills: 1, DamageTaken: 4}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

// --- Health ---

func TestHealthFraction_DropsWithDamage(t *testing.T) {
	v := NewVehicle(0, "P", TeamPlayer, 0, 0, DefaultConfig().Player, DefaultConfig().Projectile, HoldPolicy{})
	if HealthFraction(v) != 1 {
		t.Fatalf("fresh vehicle should be at full health, got %.2f", HealthFraction(v))
	}
	v.TakeHit(3)
	if math.Abs(HealthFraction(v)-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 after 3 of 6 damage, got %.4f", HealthFraction(v))
	}
	v.TakeHit(10)
	if HealthFraction(v) != 0 {
		t.Fatalf("expected 0 when dead, got %.4f", HealthFraction(v))
	}
}

// --- Rating ---

func TestRating_PerfectRound(t *testing.T) {
	v := testVehicle(0, TeamPlayer, 0, 0)
	v.stats = CombatStats{Shots: 4, Hits: 4}
	if got := Rating(v); math.Abs(got-100) > 1e-9 {
		t.Fatalf("expected 100, got %.2f", got)
	}
	if g := LetterGrade(Rating(v)); g != "A+" {
		t.Fatalf("expected A+, got %s", g)
	}
}

func TestRating_NoShotsHalfHealth(t *testing.T) {
	v := testVehicle(0, TeamPlayer, 0, 0)
	v.TakeHit(3)
	if got := Rating(v); math.Abs(got-15) > 1e-9 {
		t.Fatalf("expected 15, got %.2f", got)
	}
	if g := LetterGrade(Rating(v)); g != "F" {
		t.Fatalf("expected F, got %s", g)
	}
}

func TestLetterGrade_Boundaries(t *testing.T) {
	cases := map[float64]string{93: "A+", 92.9: "A", 78: "B+", 70: "B", 62: "C+", 55: "C", 45: "D", 44.9: "F"}
	for score, want := range cases {
		if got := LetterGrade(score); got != want {
			t.Fatalf("LetterGrade(%.1f): got %s, want %s", score, got, want)
		}
	}
}
