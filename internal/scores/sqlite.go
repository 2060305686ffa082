package scores

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// scoreRow is the persisted form of a Record.
type scoreRow struct {
	ID         string  `gorm:"primaryKey;size:36"`
	Score      float64 `gorm:"not null"`
	RecordedAt int64   `gorm:"index;not null"` // unix nanoseconds
}

func (scoreRow) TableName() string { return "high_scores" }

func (r scoreRow) record() Record {
	return Record{Score: r.Score, Timestamp: time.Unix(0, r.RecordedAt)}
}

// SQLiteLedger keeps scores in a local SQLite database with the same
// recency pruning as the file ledger.
type SQLiteLedger struct {
	db   *gorm.DB
	path string
	opts options
}

// OpenSQLite opens (or creates) the database at path and migrates the table.
func OpenSQLite(path string, opts ...Option) (*SQLiteLedger, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open score db %s: %w", path, err)
	}
	if err := db.AutoMigrate(&scoreRow{}); err != nil {
		return nil, fmt.Errorf("migrate score db: %w", err)
	}
	o.log.Debug().Str("path", path).Msg("using sqlite score ledger")
	return &SQLiteLedger{db: db, path: path, opts: o}, nil
}

// Load returns the kept records, newest first.
func (l *SQLiteLedger) Load() ([]Record, error) {
	var rows []scoreRow
	if err := l.db.Order("recorded_at desc").Limit(l.opts.max).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w: %v", l.path, ErrMalformed, err)
	}
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

// Record inserts a new row and deletes everything older than the kept window.
func (l *SQLiteLedger) Record(seconds float64) ([]Record, error) {
	row := scoreRow{
		ID:         uuid.NewString(),
		Score:      seconds,
		RecordedAt: l.opts.now().UnixNano(),
	}
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		var ids []string
		if err := tx.Model(&scoreRow{}).Order("recorded_at desc").Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) <= l.opts.max {
			return nil
		}
		return tx.Where("id IN ?", ids[l.opts.max:]).Delete(&scoreRow{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("record score: %w", err)
	}
	return l.Load()
}

// Count returns the number of stored rows.
func (l *SQLiteLedger) Count() (int64, error) {
	var n int64
	err := l.db.Model(&scoreRow{}).Count(&n).Error
	return n, err
}

// Close releases the database handle.
func (l *SQLiteLedger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
