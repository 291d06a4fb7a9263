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
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("chatty"))
}

func TestNew_WritesJSONToFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	logPath := filepath.Join(t.TempDir(), "logs", "adminctl.log")

	logger, closeFn, err := New(Options{File: logPath, Level: "info"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("listing articles")
	closeFn()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "listing articles", entry["msg"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_EnvOverridesLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	logPath := filepath.Join(t.TempDir(), "adminctl.log")

	logger, closeFn, err := New(Options{File: logPath, Level: "error"})
	require.NoError(t, err)
	logger.Debug("request sent")
	closeFn()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "request sent")
}

func TestNew_VerboseMirrorsToConsole(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	var console bytes.Buffer

	logger, closeFn, err := New(Options{
		File:    filepath.Join(t.TempDir(), "adminctl.log"),
		Verbose: true,
		Console: &console,
	})
	require.NoError(t, err)
	logger.Debug("sending GET /api/articles")
	closeFn()

	assert.Contains(t, console.String(), "sending GET /api/articles")
}
