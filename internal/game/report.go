package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/tankarena/tank-arena/internal/scores"
)

// leaderboardTimeLayout renders timestamps as DD-MM-YYYY HH:MM AM/PM.
const leaderboardTimeLayout = "02-01-2006 03:04 PM"

// FormatLeaderboardRow renders one leaderboard line. rank is 1-based.
func FormatLeaderboardRow(rank int, rec scores.Record) string {
	return fmt.Sprintf("#%d %s : %.2f seconds", rank, rec.Timestamp.Local().Format(leaderboardTimeLayout), rec.Score)
}

// RoundReport is a plain-text summary of a round: outcome, timing, per-side
// fire stats, recent events and the leaderboard.
func RoundReport(r *Round, now int64) string {
	var b strings.Builder
	out := r.Outcome()
	fmt.Fprintf(&b, "--- Tank Arena round report ---\n")
	fmt.Fprintf(&b, "round=%s phase=%s ticks=%d\n", r.ID, r.Phase(), r.TickCount())
	fmt.Fprintf(&b, "outcome=%s (%s) agents=%d/%d destroyed\n",
		out.Outcome, out.Description, out.AgentsDestroyed, out.AgentsTotal)
	fmt.Fprintf(&b, "elapsed=%.2fs first_kill_tick=%d\n", r.Elapsed(now), r.FirstKillTick())

	if p := r.Player(); p != nil {
		st := p.Stats()
		fmt.Fprintf(&b, "player: health=%d/%d shots=%d hits=%d kills=%d accuracy=%.0f%% grade=%s\n",
			p.Health(), p.MaxHealth(), st.Shots, st.Hits, st.Kills, st.Accuracy()*100, LetterGrade(Rating(p)))
	}
	var agentStats CombatStats
	for _, a := range r.Agents() {
		agentStats = agentStats.Add(a.Stats())
	}
	fmt.Fprintf(&b, "agents: alive=%d shots=%d hits=%d\n", r.AgentsAlive(), agentStats.Shots, agentStats.Hits)

	if entries := r.Feed().Recent(); len(entries) > 0 {
		b.WriteString("\nevents:\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "  - T=%d [%s] %s\n", e.Tick, e.Label, e.Message)
		}
	}

	b.WriteString("\nleaderboard:\n")
	board := r.Leaderboard()
	if len(board) == 0 {
		b.WriteString("  (no scores yet)\n")
	}
	for i, rec := range board {
		b.WriteString("  ")
		b.WriteString(FormatLeaderboardRow(i+1, rec))
		b.WriteByte('\n')
	}
	return b.String()
}

// CopyReport puts the round report on the system clipboard.
func CopyReport(r *Round, now int64) error {
	return clipboard.WriteAll(RoundReport(r, now))
}
