package sqlite

import (
	"database/sql"
)

// FormatEndForDB turns an absent end into NULL
func FormatEndForDB(end *float64) interface{} {
	if end == nil {
		return nil
	}
	return *end
}

// ParseEndFromDB turns NULL back into an absent end
func ParseEndFromDB(end sql.NullFloat64) *float64 {
	if !end.Valid {
		return nil
	}
	v := end.Float64
	return &v
}
