package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")

	Component(log, "storage").WithField("key", "k").Debug("saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "saved", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "storage", entry["component"])
	assert.Contains(t, entry, "ts")
}

func TestNew_UnknownLevel(t *testing.T) {
	log := New(&bytes.Buffer{}, "chatty")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todo.log")

	log, closer, err := Open(path, "info")
	require.NoError(t, err)
	log.Info("first")
	log.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.NotContains(t, string(data), "hidden")
}
