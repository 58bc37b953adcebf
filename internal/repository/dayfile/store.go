// Package dayfile keeps each day in its own JSON file, named like
// 2026-10-18_Sunday.json, inside one directory.
package dayfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"timelogger/internal/errors"
	"timelogger/internal/logging"
	"timelogger/internal/repository"
)

// DefaultDayFormat names day files after their date and weekday.
const DefaultDayFormat = "2006-01-02_Monday"

const fileExt = ".json"

// Options configures a Store.
type Options struct {
	Dir            string
	DayFormat      string
	DirPermissions os.FileMode
}

// Store implements repository.Store on top of diskv.
type Store struct {
	d         *diskv.Diskv
	dayFormat string
}

var _ repository.Store = (*Store)(nil)

// New creates a Store rooted at opts.Dir.
func New(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, errors.NewInvalidInputError("storage.dir", opts.Dir, "day file directory required")
	}
	if opts.DayFormat == "" {
		opts.DayFormat = DefaultDayFormat
	}
	if opts.DirPermissions == 0 {
		opts.DirPermissions = 0755
	}
	if err := os.MkdirAll(opts.Dir, opts.DirPermissions); err != nil {
		if os.IsPermission(err) {
			return nil, errors.NewPermissionError("create directory", opts.Dir)
		}
		return nil, errors.NewStorageError("create day file directory", err)
	}

	d := diskv.New(diskv.Options{
		BasePath:     opts.Dir,
		CacheSizeMax: 1024 * 1024,
		PathPerm:     opts.DirPermissions,
		FilePerm:     0644,
		TempDir:      filepath.Join(opts.Dir, ".tmp"),
	})
	return &Store{d: d, dayFormat: opts.DayFormat}, nil
}

// FileName returns the file day is kept in, relative to the store directory.
func (s *Store) FileName(day time.Time) string {
	return day.Format(s.dayFormat) + fileExt
}

// Load returns the records in day's file, or none if the file does not exist.
func (s *Store) Load(ctx context.Context, day time.Time) ([]repository.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("load day", err)
	}

	key := s.FileName(day)
	if !s.d.Has(key) {
		logging.Debugf("dayfile: no file %s\n", key)
		return []repository.Record{}, nil
	}

	data, err := s.d.Read(key)
	if err != nil {
		return nil, errors.NewStorageError("read "+key, err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, errors.NewStorageError("decode "+key, err)
	}
	logging.Debugf("dayfile: loaded %d records from %s\n", len(records), key)
	return records, nil
}

// Save overwrites day's file with records.
func (s *Store) Save(ctx context.Context, day time.Time, records []repository.Record) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("save day", err)
	}

	out := make([]repository.Record, len(records))
	copy(out, records)
	for i := range out {
		if out[i].Intervals == nil {
			out[i].Intervals = []repository.IntervalRecord{}
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return errors.NewStorageError("encode day", err)
	}

	key := s.FileName(day)
	if err := s.d.Write(key, data); err != nil {
		return errors.NewStorageError("write "+key, err)
	}
	logging.Debugf("dayfile: saved %d records to %s\n", len(records), key)
	return nil
}

// Close is a no-op; every Save is already on disk.
func (s *Store) Close() error {
	return nil
}

// legacyRecord is the older day file shape: one JSON string per task with
// its intervals under "time_blocks".
type legacyRecord struct {
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	TimeBlocks  []repository.IntervalRecord `json:"time_blocks"`
}

func decodeRecords(data []byte) ([]repository.Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	records := make([]repository.Record, 0, len(raw))
	for i, item := range raw {
		rec, err := decodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(item json.RawMessage) (repository.Record, error) {
	var encoded string
	if err := json.Unmarshal(item, &encoded); err == nil {
		var legacy legacyRecord
		if err := json.Unmarshal([]byte(encoded), &legacy); err != nil {
			return repository.Record{}, err
		}
		rec := repository.Record{
			Name:        legacy.Name,
			Description: legacy.Description,
			Intervals:   legacy.TimeBlocks,
		}
		if rec.Intervals == nil {
			rec.Intervals = []repository.IntervalRecord{}
		}
		return rec, nil
	}

	var rec repository.Record
	if err := json.Unmarshal(item, &rec); err != nil {
		return repository.Record{}, err
	}
	if rec.Intervals == nil {
		rec.Intervals = []repository.IntervalRecord{}
	}
	return rec, nil
}

