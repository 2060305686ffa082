package game

import (
	"fmt"
	"math/rand"
)

// TestSim is a headless round harness used by tests and the headless report.
// It drives a Round exactly as Game.Update does but on a synthetic clock of
// tick*1000/TPS milliseconds, with deterministic seeding and a structured log.
type TestSim struct {
	Cfg    Config
	Keys   KeySet
	Round  *Round
	SimLog *SimLog

	rng       *rand.Rand
	ledger    ScoreLedger
	player    *Vehicle
	agents    []*Vehicle
	spawnN    int
	autopilot bool

	tick int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // arena size, seed, verbose, tuning; applied first
	simOptVehicle                      // add vehicles; applied after config is final
	simOptPolicy                       // swap policies; applied after vehicles exist
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithArenaSize sets the playfield dimensions.
func WithArenaSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Cfg.ArenaWidth = w
		ts.Cfg.ArenaHeight = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithTuning edits the config before any vehicle is built.
func WithTuning(fn func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { fn(&ts.Cfg) }}
}

// WithAgentFire makes wandering agents ask to fire every ms milliseconds.
func WithAgentFire(ms int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Cfg.AgentFireMs = ms }}
}

// WithScoreLedger attaches a score ledger to the round.
func WithScoreLedger(l ScoreLedger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.ledger = l }}
}

// WithPlayer places the keyboard-driven player at (x, y) with the given health.
func WithPlayer(x, y float64, health int) SimOption {
	return SimOption{simOptVehicle, func(ts *TestSim) {
		spec := ts.Cfg.Player
		spec.Health = health
		ts.player = NewVehicle(0, "P", TeamPlayer, x, y, spec, ts.Cfg.Projectile, NewHumanPolicy(ts.Keys, spec.Speed))
	}}
}

// WithAgent adds a parked target agent at (x, y).
func WithAgent(x, y float64, health int) SimOption {
	return SimOption{simOptVehicle, func(ts *TestSim) {
		spec := ts.Cfg.Agent
		spec.Health = health
		ts.addAgent(x, y, spec, HoldPolicy{})
	}}
}

// WithWanderingAgent adds a randomly wandering agent at (x, y).
func WithWanderingAgent(x, y float64) SimOption {
	return SimOption{simOptVehicle, func(ts *TestSim) {
		policy := NewWanderPolicy(ts.rng, ts.Cfg.AgentIntervalsMs, ts.Cfg.Agent.Speed, ts.Cfg.AgentFireMs, 0)
		ts.addAgent(x, y, ts.Cfg.Agent, policy)
	}}
}

// WithSpawnedAgents adds n agents through the regular spawner.
func WithSpawnedAgents(n int) SimOption {
	return SimOption{simOptVehicle, func(ts *TestSim) { ts.spawnN = n }}
}

// WithAutopilot hands the player to the hunting autopilot.
func WithAutopilot() SimOption {
	return SimOption{simOptPolicy, func(ts *TestSim) { ts.autopilot = true }}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (arena, seed, verbose, tuning)
//  2. Vehicles (the player defaults to the configured spawn point)
//  3. Policies
//  4. The round itself, started at t=0
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Cfg:    DefaultConfig(),
		Keys:   KeySet{},
		SimLog: NewSimLog(false),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	ts.Cfg.AgentCount = 0
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptVehicle {
			o.fn(ts)
		}
	}
	if ts.player == nil {
		ts.player = NewPlayer(ts.Cfg, ts.Keys)
	}
	if ts.spawnN > 0 {
		cfg := ts.Cfg
		cfg.AgentCount = ts.spawnN
		avoid := append([]*Vehicle{ts.player}, ts.agents...)
		for _, a := range SpawnAgents(ts.rng, cfg, 0, avoid...) {
			ts.addAgent(a.x, a.y, cfg.Agent, a.policy)
		}
	}
	for _, o := range opts {
		if o.kind == simOptPolicy {
			o.fn(ts)
		}
	}

	roundOpts := []RoundOption{WithSimLog(ts.SimLog)}
	if ts.ledger != nil {
		roundOpts = append(roundOpts, WithLedger(ts.ledger))
	}
	ts.Cfg.AgentCount = len(ts.agents)
	ts.Round = NewRound(ts.Cfg, ts.player, ts.agents, 0, roundOpts...)
	if ts.autopilot {
		ts.player.SetPolicy(NewAutopilotPolicy(ts.player, ts.Round.Roster().Snapshot))
	}
	return ts
}

func (ts *TestSim) addAgent(x, y float64, spec VehicleSpec, policy ControlPolicy) {
	id := len(ts.agents) + 1
	ts.agents = append(ts.agents, NewVehicle(id, fmt.Sprintf("A%d", id-1), TeamAgent, x, y, spec, ts.Cfg.Projectile, policy))
}

// Player returns the player vehicle.
func (ts *TestSim) Player() *Vehicle { return ts.player }

// Agents returns every agent, alive or not.
func (ts *TestSim) Agents() []*Vehicle { return ts.agents }

// Press holds the given keys (and releases all others) from the next tick on.
func (ts *TestSim) Press(keys ...Key) { ts.Keys.Press(keys...) }

// Now returns the synthetic clock at the current tick in milliseconds.
func (ts *TestSim) Now() int64 { return ts.msAt(ts.tick) }

func (ts *TestSim) msAt(tick int) int64 {
	tps := ts.Cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	return int64(tick) * 1000 / int64(tps)
}

// RunTicks advances the round n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.tick++
		ts.Round.Tick(ts.msAt(ts.tick))
	}
}

// RunUntil advances the round up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.tick++
		ts.Round.Tick(ts.msAt(ts.tick))
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.tick
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick     int
	Phase    Phase
	Vehicles []VehicleSnapshot
}

// VehicleSnapshot is a lightweight copy of a vehicle's state at a tick.
type VehicleSnapshot struct {
	ID     int
	Label  string
	Team   Team
	X, Y   float64
	Facing Direction
	Health int
	Alive  bool
	Shells int
}

// Snapshot returns the current state of every vehicle, dead ones included.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Tick: ts.tick, Phase: ts.Round.Phase()}
	all := append([]*Vehicle{ts.player}, ts.agents...)
	for _, v := range all {
		snap.Vehicles = append(snap.Vehicles, VehicleSnapshot{
			ID:     v.id,
			Label:  v.label,
			Team:   v.team,
			X:      v.x,
			Y:      v.y,
			Facing: v.facing,
			Health: v.health,
			Alive:  v.alive,
			Shells: len(v.projectiles),
		})
	}
	return snap
}
