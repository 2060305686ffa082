package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"

	"github.com/tankarena/tank-arena/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	scenario string

	phase        game.Phase
	outcome      game.RoundOutcomeReason
	endTick      int
	elapsed      float64
	playerHealth int
	rating       float64

	firstShotTick int
	firstHitTick  int
	firstKillTick int

	shots       int
	hits        int
	kills       int
	agentShots  int
	agentHits   int
	moveEvents  int
	fireEvents  int
	hitEvents   int
	deathEvents int
	agentsTotal int
	agentsLeft  int
}

var scenarios = []string{"target-practice", "hunt"}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var agents int
	var agentFire int64
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&ticks, "ticks", 7200, "tick limit per round")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&agents, "agents", 8, "agents per round")
	flag.Int64Var(&agentFire, "agent-fire", 0, "agent fire request interval in ms (0 = agents never fire)")
	flag.StringVar(&scenario, "scenario", "target-practice", "scenario name")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if agents < 0 {
		fmt.Println("error: -agents must be >= 0")
		return
	}
	if !supportedScenario(scenario) {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenario, strings.Join(scenarios, ", "))
		return
	}

	fmt.Printf("=== Headless Round Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d agents=%d agent_fire_ms=%d seed_base=%d seed_step=%d\n\n",
		scenario, runs, ticks, agents, agentFire, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(scenario, i+1, seed, ticks, agents, agentFire)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func supportedScenario(name string) bool {
	for _, s := range scenarios {
		if s == name {
			return true
		}
	}
	return false
}

// buildSim sets up one round. target-practice parks the agents at random
// spots in the upper half; hunt uses the regular spawner and lets them wander.
// Either way the player is flown by the autopilot.
func buildSim(scenario string, seed int64, agents int, agentFire int64) *game.TestSim {
	opts := []game.SimOption{
		game.WithArenaSize(960, 640),
		game.WithSeed(seed),
		game.WithAgentFire(agentFire),
		game.WithAutopilot(),
	}
	switch scenario {
	case "target-practice":
		rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- reproducible layout
		opts = append(opts, game.WithPlayer(460, 560, 6))
		for i := 0; i < agents; i++ {
			x := float64(60 + rng.Intn(820))
			y := float64(40 + rng.Intn(240))
			opts = append(opts, game.WithAgent(x, y, 1))
		}
	case "hunt":
		opts = append(opts, game.WithSpawnedAgents(agents))
	}
	return game.NewTestSim(opts...)
}

func runScenario(scenario string, runIndex int, seed int64, ticks, agents int, agentFire int64) runStats {
	ts := buildSim(scenario, seed, agents, agentFire)
	ts.RunUntil(func(s *game.TestSim) bool { return s.Round.Over() }, ticks)

	entries := ts.SimLog.Entries()
	player := ts.Player()
	ps := player.Stats()
	var as game.CombatStats
	for _, a := range ts.Agents() {
		as = as.Add(a.Stats())
	}

	return runStats{
		runIndex:      runIndex,
		seed:          seed,
		scenario:      scenario,
		phase:         ts.Round.Phase(),
		outcome:       ts.Round.Outcome(),
		endTick:       ts.CurrentTick(),
		elapsed:       ts.Round.Elapsed(ts.Now()),
		playerHealth:  player.Health(),
		rating:        game.Rating(player),
		firstShotTick: firstTick(entries, "fire", "shot", player.Label()),
		firstHitTick:  firstTick(entries, "hit", "damage", ""),
		firstKillTick: ts.Round.FirstKillTick(),
		shots:         ps.Shots,
		hits:          ps.Hits,
		kills:         ps.Kills,
		agentShots:    as.Shots,
		agentHits:     as.Hits,
		moveEvents:    ts.SimLog.CountCategory("move", "position"),
		fireEvents:    ts.SimLog.CountCategory("fire", "shot"),
		hitEvents:     ts.SimLog.CountCategory("hit", "damage"),
		deathEvents:   ts.SimLog.CountCategory("death", "destroyed"),
		agentsTotal:   len(ts.Agents()),
		agentsLeft:    ts.Round.AgentsAlive(),
	}
}

// firstTick returns the tick of the first matching entry. vehicle, when set,
// restricts the search to that vehicle's entries.
func firstTick(entries []game.SimLogEntry, category, key, vehicle string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if vehicle == "" || e.Vehicle == vehicle {
			return e.Tick
		}
	}
	return -1
}

func accuracy(shots, hits int) float64 {
	if shots == 0 {
		return 0
	}
	return float64(hits) / float64(shots) * 100
}

// verdict condenses a run into one word for the aggregate table.
func verdict(rs runStats) string {
	switch rs.phase {
	case game.PhaseWon:
		if rs.outcome.Description == "flawless_victory" {
			return "flawless"
		}
		return "won"
	case game.PhaseLost:
		return "lost"
	default:
		return "timeout"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: %s phase=%s outcome=%s end_tick=%d elapsed=%.2fs player_health=%d\n",
		verdict(rs), rs.phase, rs.outcome.Outcome, rs.endTick, rs.elapsed, rs.playerHealth)
	fmt.Printf("phase_markers: first_shot=%d first_hit=%d first_kill=%d\n",
		rs.firstShotTick, rs.firstHitTick, rs.firstKillTick)
	fmt.Printf("player_fire: shots=%d hits=%d kills=%d accuracy=%.1f%% grade=%s (%.1f)\n",
		rs.shots, rs.hits, rs.kills, accuracy(rs.shots, rs.hits), game.LetterGrade(rs.rating), rs.rating)
	fmt.Printf("agent_fire: shots=%d hits=%d agents_left=%d/%d\n",
		rs.agentShots, rs.agentHits, rs.agentsLeft, rs.agentsTotal)
	fmt.Printf("event_totals: fire=%d hit=%d death=%d move=%d\n",
		rs.fireEvents, rs.hitEvents, rs.deathEvents, rs.moveEvents)
	fmt.Println()
}

func printAggregate(all []runStats) {
	verdicts := map[string]int{}
	totalShots := 0
	totalHits := 0
	totalKills := 0
	winTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))
	winSeconds := 0.0
	ratingSum := 0.0

	for _, rs := range all {
		verdicts[verdict(rs)]++
		ratingSum += rs.rating
		totalShots += rs.shots
		totalHits += rs.hits
		totalKills += rs.kills
		if rs.phase == game.PhaseWon {
			winTicks = append(winTicks, rs.endTick)
			winSeconds += rs.elapsed
		}
		if rs.firstKillTick > 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d flawless=%d won=%d lost=%d timeout=%d\n",
		len(all), verdicts["flawless"], verdicts["won"], verdicts["lost"], verdicts["timeout"])
	fmt.Printf("avg_per_run: shots=%.1f hits=%.1f kills=%.1f accuracy=%.1f%%\n",
		avg(totalShots, len(all)), avg(totalHits, len(all)), avg(totalKills, len(all)), accuracy(totalShots, totalHits))
	if len(all) > 0 {
		avgRating := ratingSum / float64(len(all))
		fmt.Printf("avg_rating=%.1f grade=%s\n", avgRating, game.LetterGrade(avgRating))
	}
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s win=%s\n", avgTickString(killTicks), avgTickString(winTicks))
	if len(winTicks) > 0 {
		fmt.Printf("avg_win_time=%.2fs\n", winSeconds/float64(len(winTicks)))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
