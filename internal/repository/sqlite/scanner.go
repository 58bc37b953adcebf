package sqlite

import (
	"timelogger/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanRecordRow scans a single joined record/interval row
func ScanRecordRow(scanner Scanner) (*RecordRow, error) {
	row := &RecordRow{}
	err := scanner.Scan(
		&row.RecordID,
		&row.Name,
		&row.Description,
		&row.Start,
		&row.End,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ScanRecordRows scans all joined record/interval rows
func ScanRecordRows(rows Rows) ([]*RecordRow, error) {
	var result []*RecordRow
	for rows.Next() {
		row, err := ScanRecordRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GroupRecordRows folds joined rows, already ordered by record and interval
// position, into records.
func GroupRecordRows(rows []*RecordRow) []repository.Record {
	records := make([]repository.Record, 0)
	var lastID int64
	for _, row := range rows {
		if len(records) == 0 || row.RecordID != lastID {
			records = append(records, repository.Record{
				Name:        row.Name,
				Description: row.Description,
				Intervals:   []repository.IntervalRecord{},
			})
			lastID = row.RecordID
		}
		if !row.Start.Valid {
			continue
		}
		current := &records[len(records)-1]
		current.Intervals = append(current.Intervals, repository.IntervalRecord{
			Start: row.Start.Float64,
			End:   ParseEndFromDB(row.End),
		})
	}
	return records
}
