package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a round.
type SimLogEntry struct {
	Tick     int
	Vehicle  string  // label e.g. "P", "A3", or "--" for round events
	Team     string  // "player", "agent", or "--"
	Category string  // move, fire, hit, death, round
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P    fire      shot             up from (497,307)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Vehicle, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a round.
// Unlike KillFeed (UI ring-buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick movement entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, vehicle, team, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Vehicle:  vehicle,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, vehicle, team, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, vehicle, team, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterVehicle returns entries for a specific vehicle label.
func (sl *SimLog) FilterVehicle(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Vehicle == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the round state.
func (sl *SimLog) Summary(tick int, player *Vehicle, agents []*Vehicle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	if player != nil {
		x, y := player.Position()
		fmt.Fprintf(&sb, "Player %s: health=%d/%d  pos=(%.1f,%.1f)  facing=%s\n",
			player.Label(), player.Health(), player.MaxHealth(), x, y, player.Facing())
		st := player.Stats()
		fmt.Fprintf(&sb, "Player fire: shots=%d hits=%d kills=%d acc=%.2f\n",
			st.Shots, st.Hits, st.Kills, st.Accuracy())
	}

	alive := 0
	inFlight := 0
	for _, a := range agents {
		if a.Alive() {
			alive++
		}
		inFlight += len(a.Projectiles())
	}
	fmt.Fprintf(&sb, "Agents alive: %d/%d  agent shells in flight: %d\n", alive, len(agents), inFlight)
	fmt.Fprintf(&sb, "Events: fire=%d hit=%d death=%d\n",
		sl.CountCategory("fire", ""), sl.CountCategory("hit", ""), sl.CountCategory("death", ""))

	return sb.String()
}
