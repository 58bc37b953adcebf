package mysql

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelogger/internal/errors"
)

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("0002_create_intervals.sql")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = parseVersion("create.sql")
	assert.Error(t, err)
	_, err = parseVersion("abc_create.sql")
	assert.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (id INT);\n\n  CREATE TABLE b (id INT);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"}, stmts)
	assert.Empty(t, splitStatements("  ;\n"))
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "sql/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 3)

	for _, f := range files {
		_, err := parseVersion(f[len("sql/"):])
		assert.NoError(t, err, f)
	}
}

func TestNew_RequiresDSN(t *testing.T) {
	_, err := New(context.Background(), Options{DSN: "  "})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestNew_RejectsMalformedDSN(t *testing.T) {
	_, err := New(context.Background(), Options{DSN: "not a dsn"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}
