package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Default store locations used when none is configured.
const (
	DefaultFile   = "high_scores.json"
	DefaultDBFile = "high_scores.db"
)

type fileDocument struct {
	HighScores []Record `json:"high_scores"`
}

// FileLedger keeps scores in a small JSON document:
//
//	{"high_scores": [{"score": 12.5, "timestamp": "..."}]}
type FileLedger struct {
	path string
	opts options
}

func NewFileLedger(path string, opts ...Option) *FileLedger {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if path == "" {
		path = DefaultFile
	}
	return &FileLedger{path: path, opts: o}
}

// Path returns the backing file.
func (l *FileLedger) Path() string { return l.path }

// Load reads the stored records. A missing file is an empty ledger; an
// unreadable or malformed one returns ErrMalformed alongside no records.
func (l *FileLedger) Load() ([]Record, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", l.path, ErrMalformed, err)
	}
	return doc.HighScores, nil
}

// Record appends seconds stamped with the current time, prunes to the most
// recent entries and writes the file back. A malformed existing file is
// replaced.
func (l *FileLedger) Record(seconds float64) ([]Record, error) {
	existing, err := l.Load()
	if err != nil {
		l.opts.log.Warn().Err(err).Str("path", l.path).Msg("discarding unreadable score file")
		existing = nil
	}
	recs := Prune(append(existing, Record{Score: seconds, Timestamp: l.opts.now()}), l.opts.max)

	data, err := json.MarshalIndent(fileDocument{HighScores: recs}, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}
	if err := writeFileAtomic(l.path, data); err != nil {
		return nil, err
	}
	return recs, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return fmt.Errorf("create temp score file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
