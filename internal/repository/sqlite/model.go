package sqlite

import "database/sql"

// RecordRow is one row of records left-joined with intervals. A record
// without intervals yields a single row with a NULL start.
type RecordRow struct {
	RecordID    int64
	Name        string
	Description string
	Start       sql.NullFloat64
	End         sql.NullFloat64
}
