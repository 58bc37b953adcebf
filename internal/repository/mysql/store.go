// Package mysql keeps the time log in a shared MySQL database, using the
// same records/intervals layout as the sqlite store.
package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"timelogger/internal/errors"
	"timelogger/internal/logging"
	"timelogger/internal/repository"
	"timelogger/internal/repository/sqlite"
)

// Options configures a Store.
type Options struct {
	// DSN like user:pass@tcp(host:3306)/dbname
	DSN          string
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// Store implements repository.Store on MySQL.
type Store struct {
	db   *sql.DB
	opts Options
}

var _ repository.Store = (*Store)(nil)

// New connects to opts.DSN and applies pending migrations.
func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.DSN) == "" {
		return nil, errors.NewInvalidInputError("storage.dsn", "", "MySQL DSN is required")
	}
	cfg, err := mysql.ParseDSN(opts.DSN)
	if err != nil {
		return nil, errors.NewInvalidInputError("storage.dsn", "", err.Error())
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, errors.NewStorageError("open mysql", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, sqlite.HandleStorageError("ping mysql", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}
	return &Store{db: db, opts: opts}, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error { return s.db.Close() }

// Load returns the records of day in their saved order.
func (s *Store) Load(ctx context.Context, day time.Time) ([]repository.Record, error) {
	ctx, cancel := bound(ctx, s.opts.QueryTimeout)
	defer cancel()

	const query = `
	SELECT r.id, r.name, r.description, i.start_time, i.end_time
	FROM records r
	LEFT JOIN intervals i ON i.record_id = r.id
	WHERE r.day = ?
	ORDER BY r.position ASC, i.position ASC`

	rows, err := sqlite.QueryMultiple(ctx, s.db, query, sqlite.ScanRecordRows, "records", repository.DayKey(day))
	if err != nil {
		return nil, err
	}
	records := sqlite.GroupRecordRows(rows)
	logging.Debugf("mysql: loaded %d records for %s\n", len(records), repository.DayKey(day))
	return records, nil
}

// Save replaces the records of day inside one transaction.
func (s *Store) Save(ctx context.Context, day time.Time, records []repository.Record) error {
	ctx, cancel := bound(ctx, s.opts.WriteTimeout)
	defer cancel()

	key := repository.DayKey(day)
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return sqlite.HandleStorageError("begin transaction", err)
	}

	// intervals go with their records through ON DELETE CASCADE
	if err := sqlite.Execute(ctx, tx, `DELETE FROM records WHERE day = ?`, key); err != nil {
		tx.Rollback()
		return err
	}

	for position, rec := range records {
		recordID, err := sqlite.ExecuteWithLastInsertID(ctx, tx,
			`INSERT INTO records (day, position, name, description) VALUES (?, ?, ?, ?)`,
			key, position, rec.Name, rec.Description)
		if err != nil {
			tx.Rollback()
			return err
		}
		for i, iv := range rec.Intervals {
			err := sqlite.Execute(ctx, tx,
				`INSERT INTO intervals (record_id, position, start_time, end_time) VALUES (?, ?, ?, ?)`,
				recordID, i, iv.Start, sqlite.FormatEndForDB(iv.End))
			if err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return sqlite.HandleStorageError("commit day "+key, err)
	}
	logging.Debugf("mysql: saved %d records for %s\n", len(records), key)
	return nil
}

func bound(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
