package config

import (
	"context"
	"fmt"
	"os"

	"timelogger/internal/repository"
	"timelogger/internal/repository/dayfile"
	"timelogger/internal/repository/mysql"
	"timelogger/internal/repository/sqlite"
)

// CreateStore opens the Store selected by config.Storage.Backend
func CreateStore(ctx context.Context, config *Config) (repository.Store, error) {
	switch config.Storage.Backend {
	case BackendSQLite, "":
		store, err := sqlite.NewWithOptions(ctx, config.GetStoragePath(), sqlite.Options{
			QueryTimeout:   config.Storage.QueryTimeout,
			WriteTimeout:   config.Storage.WriteTimeout,
			DirPermissions: os.FileMode(config.Storage.DirPermissions),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil

	case BackendDayFile:
		store, err := dayfile.New(dayfile.Options{
			Dir:            config.Storage.Dir,
			DayFormat:      config.Time.DayFormat,
			DirPermissions: os.FileMode(config.Storage.DirPermissions),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize day files: %w", err)
		}
		return store, nil

	case BackendMySQL:
		store, err := mysql.New(ctx, mysql.Options{
			DSN:          config.Storage.DSN,
			QueryTimeout: config.Storage.QueryTimeout,
			WriteTimeout: config.Storage.WriteTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mysql: %w", err)
		}
		return store, nil
	}
	return nil, &ConfigError{Field: "storage.backend", Message: "unknown backend " + config.Storage.Backend}
}

// CreateTestStore creates an in-memory store for testing
func CreateTestStore() (repository.Store, error) {
	store, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return store, nil
}
