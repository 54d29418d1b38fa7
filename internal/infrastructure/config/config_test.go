package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/modsoc.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Redis.LockTTL())
	assert.Same(t, cfg, Get())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
database:
  driver: mysql
  host: db.internal
  database: modsoc_test
logger:
  level: debug
redis:
  enabled: true
  lock_ttl_seconds: 90
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("MODSOC_DATABASE_PORT", "3307")

	cfg, err := Load("production", path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Mode)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Contains(t, cfg.Database.GetDSN(), "@tcp(db.internal:3307)/modsoc_test")
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Redis.LockTTL())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MODSOC_DATABASE_DRIVER", "mongo")

	_, err := Load("", "")
	assert.Error(t, err)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
