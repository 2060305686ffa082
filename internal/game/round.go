package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tankarena/tank-arena/internal/scores"
)

// Phase is the round state machine: Running, then Won or Lost.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// ScoreLedger persists round completion times.
type ScoreLedger interface {
	Load() ([]scores.Record, error)
	Record(seconds float64) ([]scores.Record, error)
}

// Sound identifies a one-shot effect.
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
)

// SoundSink plays a sound without blocking the tick.
type SoundSink interface {
	Play(s Sound)
}

type silentSink struct{}

func (silentSink) Play(Sound) {}

// RoundOption configures optional collaborators of a Round.
type RoundOption func(*Round)

func WithLedger(l ScoreLedger) RoundOption { return func(r *Round) { r.ledger = l } }
func WithSound(s SoundSink) RoundOption { return func(r *Round) { r.sound = s } }
func WithLogger(l zerolog.Logger) RoundOption { return func(r *Round) { r.log = l } }
func WithSimLog(sl *SimLog) RoundOption { return func(r *Round) { r.simLog = sl } }
func WithKillFeed(f *KillFeed) RoundOption { return func(r *Round) { r.feed = f } }

// Round owns the roster and drives one play session tick by tick.
type Round struct {
	ID uuid.UUID

	cfg    Config
	arena  Arena
	roster *Roster
	player *Vehicle
	agents []*Vehicle

	phase   Phase
	startMs int64
	endMs   int64
	tick    int

	recorded      bool
	leaderboard   []scores.Record
	firstKillTick int

	ledger ScoreLedger
	sound  SoundSink
	log    zerolog.Logger
	simLog *SimLog
	feed   *KillFeed

	// Produced by the most recent Tick, for the presentation layer.
	shots []*Projectile
	hits  []Hit
}

// NewRound starts a round at startMs with the given vehicles. Every vehicle
// begins in the roster; the leaderboard is loaded from the ledger, if any.
func NewRound(cfg Config, player *Vehicle, agents []*Vehicle, startMs int64, opts ...RoundOption) *Round {
	r := &Round{
		ID:      uuid.New(),
		cfg:     cfg,
		arena:   cfg.Arena(),
		player:  player,
		agents:  agents,
		phase:   PhaseRunning,
		startMs: startMs,
		sound:   silentSink{},
		log:     zerolog.Nop(),
		simLog:  NewSimLog(false),
		feed:    NewKillFeed(),
	}
	for _, o := range opts {
		o(r)
	}
	r.log = r.log.With().Str("round_id", r.ID.String()).Logger()

	members := make([]*Vehicle, 0, len(agents)+1)
	if player != nil {
		members = append(members, player)
	}
	members = append(members, agents...)
	r.roster = NewRoster(members...)

	if r.ledger != nil {
		recs, err := r.ledger.Load()
		if err != nil {
			r.log.Warn().Err(err).Msg("score ledger unreadable, starting with an empty leaderboard")
		}
		r.leaderboard = recs
	}

	r.log.Info().Int("agents", len(agents)).Msg("round started")
	r.simLog.Add(0, "--", "--", "round", "start", fmt.Sprintf("%d agents", len(agents)), float64(len(agents)))
	return r
}

func (r *Round) Phase() Phase { return r.phase }
func (r *Round) Player() *Vehicle { return r.player }
func (r *Round) Agents() []*Vehicle { return r.agents }
func (r *Round) Roster() *Roster { return r.roster }
func (r *Round) Arena() Arena { return r.arena }
func (r *Round) Config() Config { return r.cfg }
func (r *Round) TickCount() int { return r.tick }
func (r *Round) StartMs() int64 { return r.startMs }
func (r *Round) EndMs() int64 { return r.endMs }
func (r *Round) Leaderboard() []scores.Record { return r.leaderboard }
func (r *Round) BestScore() float64 { return scores.Best(r.leaderboard) }
func (r *Round) Recorded() bool { return r.recorded }
func (r *Round) FirstKillTick() int { return r.firstKillTick }
func (r *Round) SimLog() *SimLog { return r.simLog }
func (r *Round) Feed() *KillFeed { return r.feed }
func (r *Round) LastShots() []*Projectile { return r.shots }
func (r *Round) LastHits() []Hit { return r.hits }
func (r *Round) Outcome() RoundOutcomeReason { return DetermineRoundOutcome(r.player, r.agents) }

// Over reports whether the round has left the running phase.
func (r *Round) Over() bool { return r.phase != PhaseRunning }

// Elapsed returns the round duration in seconds: up to now while running,
// frozen at the end timestamp afterwards.
func (r *Round) Elapsed(now int64) float64 {
	end := now
	if r.Over() {
		end = r.endMs
	}
	return float64(end-r.startMs) / 1000
}

// AgentsAlive counts agents still in play.
func (r *Round) AgentsAlive() int {
	n := 0
	for _, a := range r.agents {
		if a.Alive() {
			n++
		}
	}
	return n
}

// Tick advances the simulation one step at monotonic time now (ms).
//
// Order: player intent and action (running only), agent intent and action,
// projectile advance, hit resolution per live shooter in roster order,
// culling, then the end-of-round check.
func (r *Round) Tick(now int64) {
	r.tick++
	r.shots = r.shots[:0]
	r.hits = r.hits[:0]

	if r.phase == PhaseRunning && r.player != nil && r.player.Alive() && r.player.policy != nil {
		r.drive(r.player, now)
	}
	for _, a := range r.agents {
		if !a.Alive() || a.policy == nil {
			continue
		}
		r.drive(a, now)
	}

	live := r.roster.Snapshot()
	for _, v := range live {
		v.AdvanceProjectiles()
	}

	// Each shooter resolves against the shared roster. A shooter killed
	// earlier in this pass has already lost its shells.
	for _, shooter := range live {
		if !shooter.Alive() {
			continue
		}
		for _, h := range shooter.ResolveHits(r.roster) {
			r.onHit(h)
		}
	}

	for _, v := range r.roster.Snapshot() {
		v.CullProjectiles(r.arena)
	}

	r.checkEnd(now)
}

func (r *Round) drive(v *Vehicle, now int64) {
	in := v.policy.DecideIntent(now)
	fromX, fromY := v.x, v.y
	shot := v.Drive(in, now, r.arena, r.roster)
	if v.x != fromX || v.y != fromY {
		r.simLog.AddVerbose(r.tick, v.label, v.team.String(), "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", v.x, v.y), 0)
	}
	if shot == nil {
		return
	}
	r.shots = append(r.shots, shot)
	r.sound.Play(SoundShot)
	px, py := shot.Position()
	r.simLog.Add(r.tick, v.label, v.team.String(), "fire", "shot",
		fmt.Sprintf("%s from (%.0f,%.0f)", v.facing, px, py), 0)
}

func (r *Round) onHit(h Hit) {
	r.hits = append(r.hits, h)
	tgt := h.Target
	r.simLog.Add(r.tick, h.Shooter.label, h.Shooter.team.String(), "hit", "damage",
		fmt.Sprintf("%s health=%d", tgt.label, tgt.health), float64(tgt.health))
	if !h.Killed {
		return
	}
	if r.firstKillTick == 0 {
		r.firstKillTick = r.tick
	}
	r.sound.Play(SoundExplosion)
	r.feed.Add(r.tick, h.Shooter.label, h.Shooter.team, fmt.Sprintf("destroyed %s", tgt.label))
	r.simLog.Add(r.tick, tgt.label, tgt.team.String(), "death", "destroyed",
		fmt.Sprintf("by %s", h.Shooter.label), 0)
	r.log.Debug().Str("vehicle", tgt.label).Str("by", h.Shooter.label).Int("agents_left", r.AgentsAlive()).Msg("vehicle destroyed")
}

func (r *Round) checkEnd(now int64) {
	if r.phase != PhaseRunning {
		return
	}
	if r.AgentsAlive() == 0 {
		r.endMs = now
		r.phase = PhaseWon
		elapsed := r.Elapsed(now)
		r.simLog.Add(r.tick, "--", "--", "round", "won", fmt.Sprintf("%.2fs", elapsed), elapsed)
		r.log.Info().Float64("elapsed_s", elapsed).Int("health", r.playerHealth()).Msg("round won")
		r.recordScore(elapsed)
		return
	}
	if r.player != nil && !r.player.Alive() {
		r.endMs = now
		r.phase = PhaseLost
		elapsed := r.Elapsed(now)
		r.simLog.Add(r.tick, "--", "--", "round", "lost", fmt.Sprintf("%.2fs", elapsed), elapsed)
		r.log.Info().Float64("elapsed_s", elapsed).Int("agents_left", r.AgentsAlive()).Msg("round lost")
	}
}

// recordScore writes the completion time once per round.
func (r *Round) recordScore(elapsed float64) {
	if r.recorded {
		return
	}
	r.recorded = true
	if r.ledger == nil {
		return
	}
	recs, err := r.ledger.Record(elapsed)
	if err != nil {
		r.log.Warn().Err(err).Float64("elapsed_s", elapsed).Msg("could not record score")
		return
	}
	r.leaderboard = recs
	r.log.Info().Float64("elapsed_s", elapsed).Float64("best_s", r.BestScore()).Msg("score recorded")
}

func (r *Round) playerHealth() int {
	if r.player == nil {
		return 0
	}
	return r.player.health
}
