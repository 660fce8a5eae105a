package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Server.EntryLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 300, cfg.Compare.CacheTTLSeconds)
	assert.Equal(t, 0, cfg.Compare.MaxParallelism)
	assert.Empty(t, cfg.Compare.ExcludedTables)
	assert.Empty(t, cfg.Compare.CustomKeys)
}

func TestLoadConfig_EnvAndSettings(t *testing.T) {
	dir := t.TempDir()
	settings := `compare:
  source: mysql://root@localhost/shop
  max_parallelism: 3
  excluded_tables: [audit_log]
  custom_keys:
    order_lines: [order_id, line_no]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tablediff.yaml"), []byte(settings), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9090\n"), 0o644))
	t.Setenv("COMPARE_MAX_PARALLELISM", "6")
	t.Cleanup(func() { os.Unsetenv("SERVER_PORT") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "mysql://root@localhost/shop", cfg.Compare.Source)
	assert.Equal(t, 6, cfg.Compare.MaxParallelism, "environment wins over the settings file")
	assert.Equal(t, []string{"audit_log"}, cfg.Compare.ExcludedTables)
	assert.Equal(t, map[string][]string{"order_lines": {"order_id", "line_no"}}, cfg.Compare.CustomKeys)
}

func TestSaveSettings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tablediff.yaml")
	require.NoError(t, os.WriteFile(file, []byte("compare:\n  max_parallelism: 2\n"), 0o644))

	require.NoError(t, SaveSettings(file, "a.ods", "sqlite://b.db"))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "a.ods", cfg.Compare.Source)
	assert.Equal(t, "sqlite://b.db", cfg.Compare.Target)
	assert.Equal(t, 2, cfg.Compare.MaxParallelism)
}

func TestSaveSettings_NewFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "fresh.yaml")

	require.NoError(t, SaveSettings(file, "x", "y"))
	_, err := os.Stat(file)
	assert.NoError(t, err)
}
