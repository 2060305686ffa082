// Package scores persists round completion times. The kept set is pruned by
// recency, not by merit: only the MaxRecords most recent entries survive.
package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// MaxRecords is how many entries a ledger keeps by default.
const MaxRecords = 5

// ErrMalformed marks a score store that exists but cannot be decoded.
var ErrMalformed = errors.New("malformed score store")

// legacyTimestamp is the zone-less ISO-8601 form older score files carry.
const legacyTimestamp = "2006-01-02T15:04:05.999999999"

// Record is one finished round.
type Record struct {
	Score     float64   `json:"score"` // seconds, lower is better
	Timestamp time.Time `json:"timestamp"`
}

type recordJSON struct {
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{Score: r.Score, Timestamp: r.Timestamp.Format(time.RFC3339Nano)})
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ts, err := time.Parse(time.RFC3339Nano, raw.Timestamp)
	if err != nil {
		ts, err = time.ParseInLocation(legacyTimestamp, raw.Timestamp, time.Local)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", raw.Timestamp, err)
		}
	}
	r.Score = raw.Score
	r.Timestamp = ts
	return nil
}

// Best returns the lowest score, or 0 when there are no records.
func Best(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	best := records[0].Score
	for _, r := range records[1:] {
		if r.Score < best {
			best = r.Score
		}
	}
	return best
}

// Prune sorts records newest first and keeps at most max of them.
func Prune(records []Record, max int) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// Option configures a ledger.
type Option func(*options)

type options struct {
	max int
	now func() time.Time
	log zerolog.Logger
}

func defaultOptions() options {
	return options{max: MaxRecords, now: time.Now, log: zerolog.Nop()}
}

// WithMaxRecords overrides how many entries are kept.
func WithMaxRecords(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.max = n
		}
	}
}

// WithClock sets the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger for degraded-mode warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}
