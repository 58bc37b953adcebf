package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the config search path at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv(EnvConfigPath, t.TempDir())
	return home
}

func TestLoader_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".timelogger"), cfg.Storage.Dir)
	assert.Equal(t, 10*time.Second, cfg.Storage.QueryTimeout)
	assert.Equal(t, uint32(0755), cfg.Storage.DirPermissions)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Display.ShowPercentages)
}

func TestLoader_Environment(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("TL_STORAGE_BACKEND", "DayFile")
	t.Setenv("TL_STORAGE_DIR", dir)
	t.Setenv("TL_STORAGE_QUERY_TIMEOUT", "3s")
	t.Setenv("TL_STORAGE_DIR_PERMISSIONS", "0700")
	t.Setenv("TL_LEDGER_MAX_HISTORY", "20")
	t.Setenv("TL_DISPLAY_COLOR", "false")
	t.Setenv("TL_APPLICATION_VERBOSE", "true")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, BackendDayFile, cfg.Storage.Backend)
	assert.Equal(t, dir, cfg.Storage.Dir)
	assert.Equal(t, 3*time.Second, cfg.Storage.QueryTimeout)
	assert.Equal(t, uint32(0700), cfg.Storage.DirPermissions)
	assert.Equal(t, 20, cfg.Ledger.MaxHistory)
	assert.False(t, cfg.Display.Color)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_ConfigFile(t *testing.T) {
	isolate(t)
	cfgDir := t.TempDir()
	t.Setenv(EnvConfigPath, cfgDir)

	yaml := `
storage:
  backend: dayfile
  dir: ~/worklog
  dir_permissions: 0750
time:
  day_format: "20060102"
display:
  active_marker: "*"
`
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, FileName+".yaml"), []byte(yaml), 0644))

	loader := NewLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(cfgDir, FileName+".yaml"), loader.ConfigFileUsed())
	assert.Equal(t, BackendDayFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "worklog"), cfg.Storage.Dir)
	assert.Equal(t, uint32(0750), cfg.Storage.DirPermissions)
	assert.Equal(t, "20060102", cfg.Time.DayFormat)
	assert.Equal(t, "*", cfg.Display.ActiveMarker)

	t.Run("environment beats file", func(t *testing.T) {
		t.Setenv("TL_DISPLAY_ACTIVE_MARKER", "=>")
		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Equal(t, "=>", cfg.Display.ActiveMarker)
	})
}

func TestLoader_InvalidConfig(t *testing.T) {
	isolate(t)
	t.Setenv("TL_STORAGE_BACKEND", "mysql")

	_, err := NewLoader().Load()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "storage.dsn", cfgErr.Field)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	backend := BackendDayFile
	verbose := true
	history := 5
	color := false

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		StorageBackend: &backend,
		StorageDir:     &dir,
		MaxHistory:     &history,
		Color:          &color,
		Verbose:        &verbose,
	})
	require.NoError(t, err)
	assert.Equal(t, BackendDayFile, cfg.Storage.Backend)
	assert.Equal(t, dir, cfg.Storage.Dir)
	assert.Equal(t, 5, cfg.Ledger.MaxHistory)
	assert.False(t, cfg.Display.Color)
	assert.True(t, cfg.Application.Verbose)

	negative := -2
	_, err = NewLoader().LoadWithOverrides(&ConfigOverrides{MaxHistory: &negative})
	assert.Error(t, err)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseDurationWithFallback("2s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("1", false))
	assert.True(t, ParseBoolWithFallback("maybe", true))
	assert.Equal(t, uint32(0700), ParseUint32WithFallback("700", 8, 0755))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("rwx", 8, 0755))
}
