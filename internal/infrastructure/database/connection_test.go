package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modsoc/internal/shared/config"
)

func TestOpen_SQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "modsoc.db")

	conn, err := Open(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())

	assert.FileExists(t, path)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestInitAndClose(t *testing.T) {
	require.NoError(t, Init(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}))
	assert.NotNil(t, Get())
	assert.NoError(t, Close())
}
