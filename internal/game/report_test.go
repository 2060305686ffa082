package game

import (
	"strings"
	"testing"
	"time"

	"github.com/tankarena/tank-arena/internal/scores"
)

func TestFormatLeaderboardRow(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	got := FormatLeaderboardRow(2, scores.Record{Score: 12.347, Timestamp: ts})
	want := "#2 09-03-2024 02:05 PM : 12.35 seconds"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRoundReport_ContainsOutcomeAndLeaderboard(t *testing.T) {
	ledger := &countingLedger{}
	ts := NewTestSim(
		WithScoreLedger(ledger),
		WithPlayer(100, 300, 6),
		WithAgent(100, 100, 1),
	)
	ts.Press(KeyFire)
	if ts.RunUntil(func(s *TestSim) bool { return s.Round.Over() }, 200) < 0 {
		t.Fatalf("round never ended")
	}
	report := RoundReport(ts.Round, ts.Now())
	for _, want := range []string{
		ts.Round.ID.String(),
		"phase=won",
		"outcome=player_victory",
		"kills=1",
		"destroyed A0",
		"#1 ",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRoundReport_EmptyLeaderboard(t *testing.T) {
	ts := NewTestSim(WithAgent(100, 100, 1))
	report := RoundReport(ts.Round, ts.Now())
	if !strings.Contains(report, "(no scores yet)") || !strings.Contains(report, "phase=running") {
		t.Fatalf("unexpected report:\n%s", report)
	}
}
