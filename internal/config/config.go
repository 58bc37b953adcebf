package config

import (
	"path/filepath"
	"time"
)

// Storage backends
const (
	BackendSQLite  = "sqlite"
	BackendDayFile = "dayfile"
	BackendMySQL   = "mysql"
)

// Config holds all configuration options for the time logger
type Config struct {
	Storage     StorageConfig
	Time        TimeConfig
	Ledger      LedgerConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// StorageConfig selects and tunes the Store
type StorageConfig struct {
	Backend        string
	Dir            string
	Filename       string
	DSN            string
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions uint32
}

// TimeConfig holds clock and day formatting
type TimeConfig struct {
	ClockFormat string
	DayFormat   string
}

// LedgerConfig holds ledger behaviour
type LedgerConfig struct {
	HiddenPrefix string
	// MaxHistory caps undo snapshots; 0 keeps all of them.
	MaxHistory int
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMinLength int
	TaskNameMaxLength int
	MaxYearsBack      int
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	ActiveMarker    string
	Color           bool
	ShowPercentages bool
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration
	Verbose bool
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Dir:            "~/.timelogger",
			Filename:       "timelogger.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			ClockFormat: "15:04",
			DayFormat:   "2006-01-02_Monday",
		},
		Ledger: LedgerConfig{
			HiddenPrefix: ".",
			MaxHistory:   0,
		},
		Validation: ValidationConfig{
			TaskNameMinLength: 1,
			TaskNameMaxLength: 255,
			MaxYearsBack:      10,
		},
		Display: DisplayConfig{
			ActiveMarker:    ">",
			Color:           true,
			ShowPercentages: true,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetStoragePath returns the full path to the sqlite database file
func (c *Config) GetStoragePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Filename == "" {
			return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
		}
		fallthrough
	case BackendDayFile:
		if c.Storage.Dir == "" {
			return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
		}
	case BackendMySQL:
		if c.Storage.DSN == "" {
			return &ConfigError{Field: "storage.dsn", Message: "mysql backend needs a DSN"}
		}
	default:
		return &ConfigError{Field: "storage.backend", Message: "unknown backend " + c.Storage.Backend}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Time.ClockFormat == "" {
		return &ConfigError{Field: "time.clock_format", Message: "clock format cannot be empty"}
	}
	if c.Time.DayFormat == "" {
		return &ConfigError{Field: "time.day_format", Message: "day format cannot be empty"}
	}

	if c.Ledger.HiddenPrefix == "" {
		return &ConfigError{Field: "ledger.hidden_prefix", Message: "hidden prefix cannot be empty"}
	}
	if c.Ledger.MaxHistory < 0 {
		return &ConfigError{Field: "ledger.max_history", Message: "max history cannot be negative"}
	}

	if c.Validation.TaskNameMinLength < 1 {
		return &ConfigError{Field: "validation.task_name_min_length", Message: "task name minimum length must be at least 1"}
	}
	if c.Validation.TaskNameMaxLength < c.Validation.TaskNameMinLength {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be greater than minimum length"}
	}
	if c.Validation.MaxYearsBack < 0 {
		return &ConfigError{Field: "validation.max_years_back", Message: "max years back cannot be negative"}
	}

	if c.Display.ActiveMarker == "" {
		return &ConfigError{Field: "display.active_marker", Message: "active marker cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
