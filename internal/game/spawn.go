package game

import (
	"fmt"
	"math/rand"
)

const (
	spawnMinX        = 100
	spawnMaxX        = 900
	spawnMinY        = 100
	spawnMaxY        = 500
	spawnMaxAttempts = 50
)

// NewPlayer builds the human-driven tank from config.
func NewPlayer(cfg Config, keys KeyState) *Vehicle {
	return NewVehicle(0, "P", TeamPlayer, cfg.PlayerX, cfg.PlayerY, cfg.Player, cfg.Projectile,
		NewHumanPolicy(keys, cfg.Player.Speed))
}

// SpawnAgents places cfg.AgentCount wandering agents at integer positions in
// the spawn box. Each candidate is re-drawn up to spawnMaxAttempts times to
// avoid the vehicles in avoid and the agents already placed; after that the
// last draw is taken as is.
func SpawnAgents(rng *rand.Rand, cfg Config, now int64, avoid ...*Vehicle) []*Vehicle {
	minX, maxX := spawnRange(spawnMinX, spawnMaxX, float64(cfg.ArenaWidth)-cfg.Agent.Width)
	minY, maxY := spawnRange(spawnMinY, spawnMaxY, float64(cfg.ArenaHeight)-cfg.Agent.Height)

	taken := make([]Rect, 0, cfg.AgentCount+len(avoid))
	for _, v := range avoid {
		if v != nil {
			taken = append(taken, v.Rect())
		}
	}

	agents := make([]*Vehicle, 0, cfg.AgentCount)
	for i := 0; i < cfg.AgentCount; i++ {
		var cand Rect
		for attempt := 0; attempt < spawnMaxAttempts; attempt++ {
			cand = Rect{
				X: float64(minX + rng.Intn(maxX-minX+1)),
				Y: float64(minY + rng.Intn(maxY-minY+1)),
				W: cfg.Agent.Width,
				H: cfg.Agent.Height,
			}
			if !overlapsAny(cand, taken) {
				break
			}
		}
		taken = append(taken, cand)

		policy := NewWanderPolicy(rng, cfg.AgentIntervalsMs, cfg.Agent.Speed, cfg.AgentFireMs, now)
		agents = append(agents, NewVehicle(i+1, fmt.Sprintf("A%d", i), TeamAgent, cand.X, cand.Y,
			cfg.Agent, cfg.Projectile, policy))
	}
	return agents
}

// NewAgent places a single wandering agent at (x, y).
func NewAgent(rng *rand.Rand, cfg Config, id int, x, y float64, now int64) *Vehicle {
	policy := NewWanderPolicy(rng, cfg.AgentIntervalsMs, cfg.Agent.Speed, cfg.AgentFireMs, now)
	return NewVehicle(id, fmt.Sprintf("A%d", id-1), TeamAgent, x, y, cfg.Agent, cfg.Projectile, policy)
}

// SetupRound builds the standard round: the player at its configured spot and
// a freshly spawned pack of agents.
func SetupRound(cfg Config, keys KeyState, rng *rand.Rand, now int64, opts ...RoundOption) *Round {
	player := NewPlayer(cfg, keys)
	agents := SpawnAgents(rng, cfg, now, player)
	return NewRound(cfg, player, agents, now, opts...)
}

// spawnRange narrows [lo, hi] to what fits in an arena whose last valid
// coordinate is limit.
func spawnRange(lo, hi int, limit float64) (int, int) {
	if float64(hi) > limit {
		hi = int(limit)
	}
	if hi < lo {
		lo = 0
		if hi < 0 {
			hi = 0
		}
	}
	return lo, hi
}

func overlapsAny(r Rect, others []Rect) bool {
	for _, o := range others {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
