// Package sqlite is the default Store: every day of every ledger in one
// SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"timelogger/internal/errors"
	"timelogger/internal/logging"
	"timelogger/internal/repository"
	"timelogger/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Options tunes a SQLiteStore.
type Options struct {
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		QueryTimeout:   10 * time.Second,
		WriteTimeout:   5 * time.Second,
		DirPermissions: 0755,
	}
}

// SQLiteStore implements repository.Store
type SQLiteStore struct {
	db   *sql.DB
	opts Options
}

var _ repository.Store = (*SQLiteStore)(nil)

// New creates a new SQLite store with default options
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithOptions(context.Background(), dbPath, DefaultOptions())
}

// NewWithOptions opens dbPath, creating its directory if needed, and
// applies pending migrations.
func NewWithOptions(ctx context.Context, dbPath string, opts Options) (*SQLiteStore, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), opts.DirPermissions); err != nil {
			if os.IsPermission(err) {
				return nil, errors.NewPermissionError("create directory", filepath.Dir(dbPath))
			}
			return nil, errors.NewStorageError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	if dbPath == MemoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteStore{db: db, opts: opts}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the records of day in their saved order.
func (s *SQLiteStore) Load(ctx context.Context, day time.Time) ([]repository.Record, error) {
	ctx, cancel := withTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	query := `
	SELECT r.id, r.name, r.description, i.start_time, i.end_time
	FROM records r
	LEFT JOIN intervals i ON i.record_id = r.id
	WHERE r.day = ?
	ORDER BY r.position ASC, i.position ASC`

	rows, err := QueryMultiple(ctx, s.db, query, ScanRecordRows, "records", repository.DayKey(day))
	if err != nil {
		return nil, err
	}

	records := GroupRecordRows(rows)
	logging.Debugf("sqlite: loaded %d records for %s\n", len(records), repository.DayKey(day))
	return records, nil
}

// Save replaces the records of day inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, day time.Time, records []repository.Record) error {
	ctx, cancel := withTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()

	key := repository.DayKey(day)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleStorageError("begin transaction", err)
	}

	if err := saveDay(ctx, tx, key, records); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleStorageError("commit day "+key, err)
	}
	logging.Debugf("sqlite: saved %d records for %s\n", len(records), key)
	return nil
}

func saveDay(ctx context.Context, tx *sql.Tx, key string, records []repository.Record) error {
	err := Execute(ctx, tx, `DELETE FROM intervals WHERE record_id IN (SELECT id FROM records WHERE day = ?)`, key)
	if err != nil {
		return err
	}
	if err := Execute(ctx, tx, `DELETE FROM records WHERE day = ?`, key); err != nil {
		return err
	}

	for position, rec := range records {
		recordID, err := ExecuteWithLastInsertID(ctx, tx,
			`INSERT INTO records (day, position, name, description) VALUES (?, ?, ?, ?)`,
			key, position, rec.Name, rec.Description)
		if err != nil {
			return err
		}

		for i, iv := range rec.Intervals {
			err := Execute(ctx, tx,
				`INSERT INTO intervals (record_id, position, start_time, end_time) VALUES (?, ?, ?, ?)`,
				recordID, i, iv.Start, FormatEndForDB(iv.End))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
