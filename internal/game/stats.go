package game

// --- Combat stats ---

// CombatStats tallies one vehicle's shooting over a round.
type CombatStats struct {
	Shots       int // shells spawned
	Hits        int // shells that struck a foreign vehicle
	Kills       int // hits that took the target to zero health
	DamageTaken int
}

// Accuracy returns hits per shot in [0, 1]; 0 before the first shot.
func (cs CombatStats) Accuracy() float64 {
	if cs.Shots == 0 {
		return 0
	}
	return clamp01(float64(cs.Hits) / float64(cs.Shots))
}

// Add returns the element-wise sum of two tallies.
func (cs CombatStats) Add(o CombatStats) CombatStats {
	return CombatStats{
		Shots:       cs.Shots + o.Shots,
		Hits:        cs.Hits + o.Hits,
		Kills:       cs.Kills + o.Kills,
		DamageTaken: cs.DamageTaken + o.DamageTaken,
	}
}

// --- Health ---

// HealthFraction returns current/max health in [0, 1].
func HealthFraction(v *Vehicle) float64 {
	if v.maxHealth <= 0 {
		return 0
	}
	return clamp01(float64(v.health) / float64(v.maxHealth))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// --- Rating ---

// Rating scores a vehicle's round from 0 to 100: mostly accuracy, the rest
// for health kept.
func Rating(v *Vehicle) float64 {
	return 70*v.stats.Accuracy() + 30*HealthFraction(v)
}

// LetterGrade maps a 0-100 rating to a letter grade.
func LetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
