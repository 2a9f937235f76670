package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pyprojectLogger "github.com/anchore/check-pyproject/pyproject/logger"
)

var _ pyprojectLogger.Logger = (*LogrusLogger)(nil)

func TestLogrusLogger_StructuredFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "check.log")

	l, err := NewLogrusLogger(LogrusConfig{
		EnableFile:   true,
		Structured:   true,
		Level:        logrus.InfoLevel,
		FileLocation: location,
	})
	require.NoError(t, err)

	l.Debugf("hidden %d", 1)
	l.Warnf("[project].%s: %q, but %q not in [tool.poetry].", "description", "text", "description")
	l.Error("unable to compare")
	require.NoError(t, l.Close())

	contents, err := os.ReadFile(location)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, `[project].description: "text", but "description" not in [tool.poetry].`, entry["msg"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "error", entry["level"])
}

func TestLogrusLogger_Discard(t *testing.T) {
	l, err := NewLogrusLogger(LogrusConfig{Level: logrus.DebugLevel})
	require.NoError(t, err)

	l.Info("nowhere")
	assert.NoError(t, l.Close())
}

func TestLogrusLogger_BadFile(t *testing.T) {
	_, err := NewLogrusLogger(LogrusConfig{
		EnableFile:   true,
		FileLocation: filepath.Join(t.TempDir(), "missing", "dir", "check.log"),
	})
	assert.Error(t, err)
}
