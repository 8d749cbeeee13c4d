package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Console: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", zap.Int("n", 1))
	require.NoError(t, closeFn())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "INFO")
}

func TestVerboseShowsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Console: &buf, Verbose: true})
	require.NoError(t, err)

	logger.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestFileSinkIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.log")
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Console: &buf, File: path})
	require.NoError(t, err)

	logger.Debug("to file only", zap.String("k", "v"))
	require.NoError(t, closeFn())

	assert.NotContains(t, buf.String(), "to file only")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "to file only", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "timestamp")
}

func TestFileSinkBadPath(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "cli.log")})
	assert.Error(t, err)
}

func TestServerLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewServer(&buf, false)
	logger.Info("request", zap.Int("status", 200))
	_ = logger.Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, float64(200), entry["status"])
}
