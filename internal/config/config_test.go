package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/todo"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "sub", DefaultLogName), cfg.LogPath)
	assert.Equal(t, DefaultStorageKey, cfg.StorageKey)
	assert.Equal(t, 2500*time.Millisecond, cfg.ErrorHideDelay())
	assert.Equal(t, 5*time.Second, cfg.UndoWindow())

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreate_PartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `
db_path = "/var/tmp/tasks.db"
default_filter = "active"
undo_window_ms = 8000

[keys]
quit = "Q"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/tmp/tasks.db", cfg.DBPath)
	assert.Equal(t, todo.FilterActive, cfg.Filter())
	assert.Equal(t, 8*time.Second, cfg.UndoWindow())
	assert.Equal(t, 2500*time.Millisecond, cfg.ErrorHideDelay())
	assert.Equal(t, "Q", cfg.Keys.Quit)
	assert.Equal(t, "a", cfg.Keys.Add)
	assert.Equal(t, " ", cfg.Keys.Toggle)
}

func TestLoadOrCreate_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("db_path = ["), 0o644))
	_, err := LoadOrCreate(bad)
	assert.Error(t, err)

	filter := filepath.Join(dir, "filter.toml")
	require.NoError(t, os.WriteFile(filter, []byte(`default_filter = "someday"`), 0o644))
	_, err = LoadOrCreate(filter)
	assert.ErrorIs(t, err, todo.ErrUnknownFilter)

	delay := filepath.Join(dir, "delay.toml")
	require.NoError(t, os.WriteFile(delay, []byte(`error_hide_ms = -1`), 0o644))
	_, err = LoadOrCreate(delay)
	assert.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	path := ResolveConfigPath()
	assert.Equal(t, DefaultConfigFileName, filepath.Base(path))
}
