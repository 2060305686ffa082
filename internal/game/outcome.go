package game

type RoundOutcome int

const (
	OutcomeInconclusive RoundOutcome = iota
	OutcomePlayerVictory
	OutcomePlayerDefeat
)

func (o RoundOutcome) String() string {
	switch o {
	case OutcomePlayerVictory:
		return "player_victory"
	case OutcomePlayerDefeat:
		return "player_defeat"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

type RoundOutcomeReason struct {
	Outcome         RoundOutcome
	AgentsTotal     int
	AgentsDestroyed int
	PlayerHealth    int
	PlayerMaxHealth int
	Description     string
}

// DetermineRoundOutcome classifies the current state of a round. The player
// wins once every agent is down, even on the tick it dies itself.
func DetermineRoundOutcome(player *Vehicle, agents []*Vehicle) RoundOutcomeReason {
	r := RoundOutcomeReason{AgentsTotal: len(agents)}
	for _, a := range agents {
		if !a.Alive() {
			r.AgentsDestroyed++
		}
	}
	if player != nil {
		r.PlayerHealth = player.Health()
		r.PlayerMaxHealth = player.MaxHealth()
	}

	switch {
	case r.AgentsDestroyed == r.AgentsTotal:
		r.Outcome = OutcomePlayerVictory
		if r.PlayerHealth == r.PlayerMaxHealth {
			r.Description = "flawless_victory"
		} else {
			r.Description = "victory_all_agents_destroyed"
		}
	case player == nil || !player.Alive():
		r.Outcome = OutcomePlayerDefeat
		r.Description = "player_destroyed"
	default:
		r.Outcome = OutcomeInconclusive
		r.Description = "agents_remaining"
	}
	return r
}
