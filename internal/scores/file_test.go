package scores

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLedger_MissingFileIsEmpty(t *testing.T) {
	l := NewFileLedger(filepath.Join(t.TempDir(), "high_scores.json"))
	recs, err := l.Load()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFileLedger_MalformedFileFailsSoft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"high_scores": [oops`), 0644))

	l := NewFileLedger(path, WithClock(stepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))
	recs, err := l.Load()
	require.ErrorIs(t, err, ErrMalformed)
	assert.Empty(t, recs)

	// Recording over a corrupt file replaces it.
	recs, err = l.Record(33.3)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 33.3, recs[0].Score)

	reloaded, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, reloaded, 1)
}

func TestFileLedger_SixthEntryPrunesOldest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.json")
	l := NewFileLedger(path, WithClock(stepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))

	scores := []float64{5, 50, 40, 30, 20, 60}
	var recs []Record
	var err error
	for _, s := range scores {
		recs, err = l.Record(s)
		require.NoError(t, err)
	}

	require.Len(t, recs, MaxRecords)
	// Newest first; the best (5) was the oldest and is gone.
	got := make([]float64, len(recs))
	for i, r := range recs {
		got[i] = r.Score
	}
	assert.Equal(t, []float64{60, 20, 30, 40, 50}, got)
	assert.Equal(t, 20.0, Best(recs))
}

func TestFileLedger_DocumentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.json")
	l := NewFileLedger(path, WithClock(func() time.Time { return time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC) }))
	_, err := l.Record(12.34)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc["high_scores"], 1)
	assert.Equal(t, 12.34, doc["high_scores"][0]["score"])
	assert.Equal(t, "2024-03-02T08:00:00Z", doc["high_scores"][0]["timestamp"])
}

func TestFileLedger_ReadsLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.json")
	legacy := `{
    "high_scores": [
        {"score": 48.01, "timestamp": "2024-06-01T10:00:00.000001"},
        {"score": 39.5, "timestamp": "2024-05-30T10:00:00.000001"}
    ]
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	recs, err := NewFileLedger(path).Load()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 39.5, Best(recs))
}

func TestFileLedger_CustomMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.json")
	l := NewFileLedger(path, WithMaxRecords(2), WithClock(stepClock(time.Now())))
	for _, s := range []float64{1, 2, 3} {
		_, err := l.Record(s)
		require.NoError(t, err)
	}
	recs, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestNewFileLedger_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFile, NewFileLedger("").Path())
}
