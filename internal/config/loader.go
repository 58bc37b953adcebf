package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. TL_STORAGE_BACKEND.
	EnvPrefix = "TL"
	// EnvConfigPath adds a directory to the config file search path.
	EnvConfigPath = "TL_CONFIG_PATH"
	// FileName is the config file looked up, without its .yaml extension.
	FileName = ".timelogger"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the optional .timelogger.yaml
// 3. Override with TL_* environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	l.setDefaults(NewConfig())

	l.v.SetConfigName(FileName)
	l.v.SetConfigType("yaml")
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		l.v.AddConfigPath(override)
	}
	l.v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		l.v.AddConfigPath(home)
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config, err := l.decode()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		if err := l.applyOverrides(config, overrides); err != nil {
			return nil, err
		}
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ConfigFileUsed returns the config file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	StorageBackend  *string
	StorageDir      *string
	StorageFilename *string
	StorageDSN      *string

	DayFormat *string

	MaxHistory *int

	Color           *bool
	ShowPercentages *bool

	Timeout *time.Duration
	Verbose *bool
}

func (l *Loader) setDefaults(c *Config) {
	l.v.SetDefault("storage.backend", c.Storage.Backend)
	l.v.SetDefault("storage.dir", c.Storage.Dir)
	l.v.SetDefault("storage.filename", c.Storage.Filename)
	l.v.SetDefault("storage.dsn", c.Storage.DSN)
	l.v.SetDefault("storage.query_timeout", c.Storage.QueryTimeout.String())
	l.v.SetDefault("storage.write_timeout", c.Storage.WriteTimeout.String())
	l.v.SetDefault("storage.dir_permissions", strconv.FormatUint(uint64(c.Storage.DirPermissions), 8))

	l.v.SetDefault("time.clock_format", c.Time.ClockFormat)
	l.v.SetDefault("time.day_format", c.Time.DayFormat)

	l.v.SetDefault("ledger.hidden_prefix", c.Ledger.HiddenPrefix)
	l.v.SetDefault("ledger.max_history", c.Ledger.MaxHistory)

	l.v.SetDefault("validation.task_name_min_length", c.Validation.TaskNameMinLength)
	l.v.SetDefault("validation.task_name_max_length", c.Validation.TaskNameMaxLength)
	l.v.SetDefault("validation.max_years_back", c.Validation.MaxYearsBack)

	l.v.SetDefault("display.active_marker", c.Display.ActiveMarker)
	l.v.SetDefault("display.color", c.Display.Color)
	l.v.SetDefault("display.show_percentages", c.Display.ShowPercentages)

	l.v.SetDefault("application.timeout", c.Application.Timeout.String())
	l.v.SetDefault("application.verbose", c.Application.Verbose)
}

func (l *Loader) decode() (*Config, error) {
	c := NewConfig()

	c.Storage.Backend = strings.ToLower(l.v.GetString("storage.backend"))
	dir, err := homedir.Expand(l.v.GetString("storage.dir"))
	if err != nil {
		return nil, &ConfigError{Field: "storage.dir", Message: err.Error()}
	}
	c.Storage.Dir = dir
	c.Storage.Filename = l.v.GetString("storage.filename")
	c.Storage.DSN = l.v.GetString("storage.dsn")
	c.Storage.QueryTimeout = ParseDurationWithFallback(l.v.GetString("storage.query_timeout"), c.Storage.QueryTimeout)
	c.Storage.WriteTimeout = ParseDurationWithFallback(l.v.GetString("storage.write_timeout"), c.Storage.WriteTimeout)
	c.Storage.DirPermissions = dirPermissions(l.v.Get("storage.dir_permissions"), c.Storage.DirPermissions)

	c.Time.ClockFormat = l.v.GetString("time.clock_format")
	c.Time.DayFormat = l.v.GetString("time.day_format")

	c.Ledger.HiddenPrefix = l.v.GetString("ledger.hidden_prefix")
	c.Ledger.MaxHistory = ParseIntWithFallback(l.v.GetString("ledger.max_history"), c.Ledger.MaxHistory)

	c.Validation.TaskNameMinLength = ParseIntWithFallback(l.v.GetString("validation.task_name_min_length"), c.Validation.TaskNameMinLength)
	c.Validation.TaskNameMaxLength = ParseIntWithFallback(l.v.GetString("validation.task_name_max_length"), c.Validation.TaskNameMaxLength)
	c.Validation.MaxYearsBack = ParseIntWithFallback(l.v.GetString("validation.max_years_back"), c.Validation.MaxYearsBack)

	c.Display.ActiveMarker = l.v.GetString("display.active_marker")
	c.Display.Color = ParseBoolWithFallback(l.v.GetString("display.color"), c.Display.Color)
	c.Display.ShowPercentages = ParseBoolWithFallback(l.v.GetString("display.show_percentages"), c.Display.ShowPercentages)

	c.Application.Timeout = ParseDurationWithFallback(l.v.GetString("application.timeout"), c.Application.Timeout)
	c.Application.Verbose = ParseBoolWithFallback(l.v.GetString("application.verbose"), c.Application.Verbose)

	return c, nil
}

// dirPermissions accepts an octal string ("0750") or a YAML octal literal,
// which arrives already decoded as an int.
func dirPermissions(raw interface{}, fallback uint32) uint32 {
	switch v := raw.(type) {
	case int:
		if v > 0 {
			return uint32(v)
		}
	case string:
		return ParseUint32WithFallback(v, 8, fallback)
	}
	return fallback
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) error {
	if overrides.StorageBackend != nil {
		config.Storage.Backend = strings.ToLower(*overrides.StorageBackend)
	}
	if overrides.StorageDir != nil {
		dir, err := homedir.Expand(*overrides.StorageDir)
		if err != nil {
			return &ConfigError{Field: "storage.dir", Message: err.Error()}
		}
		config.Storage.Dir = dir
	}
	if overrides.StorageFilename != nil {
		config.Storage.Filename = *overrides.StorageFilename
	}
	if overrides.StorageDSN != nil {
		config.Storage.DSN = *overrides.StorageDSN
	}
	if overrides.DayFormat != nil {
		config.Time.DayFormat = *overrides.DayFormat
	}
	if overrides.MaxHistory != nil {
		config.Ledger.MaxHistory = *overrides.MaxHistory
	}
	if overrides.Color != nil {
		config.Display.Color = *overrides.Color
	}
	if overrides.ShowPercentages != nil {
		config.Display.ShowPercentages = *overrides.ShowPercentages
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	return nil
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
