package scores

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, opts ...Option) *SQLiteLedger {
	t.Helper()
	l, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestSQLiteLedger_EmptyOnOpen(t *testing.T) {
	l := openTestDB(t)
	recs, err := l.Load()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSQLiteLedger_PrunesToMostRecent(t *testing.T) {
	l := openTestDB(t, WithClock(stepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))

	var recs []Record
	var err error
	for _, s := range []float64{5, 50, 40, 30, 20, 60} {
		recs, err = l.Record(s)
		require.NoError(t, err)
	}

	require.Len(t, recs, MaxRecords)
	assert.Equal(t, 60.0, recs[0].Score)
	assert.Equal(t, 20.0, Best(recs))

	n, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(MaxRecords), n)
}

func TestSQLiteLedger_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	l, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = l.Record(14.2)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l2, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l2.Close() })
	recs, err := l2.Load()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 14.2, recs[0].Score)
}
