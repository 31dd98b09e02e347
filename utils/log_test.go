package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, INFO)

	log.Debug("hidden %d", 1)
	log.Info("gains %s", "kp=1")
	log.Critical("fault on axis %s", "yaw")
	out := buf.String()

	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] gains kp=1")
	assert.Contains(t, out, "[CRITICAL] fault on axis yaw")
	assert.False(t, log.Enabled(TRACE))

	buf.Reset()
	log.SetMinLevel(TRACE)
	assert.True(t, log.Enabled(TRACE))
	log.Trace("rx id=0x%X", 0x300)
	assert.Contains(t, buf.String(), "[TRACE] rx id=0x300")
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed_loop.log")
	log, err := NewFileLogger(path, WARN, false)
	require.NoError(t, err)

	log.Info("skipped")
	log.Warn("feedback stale")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[WARN] feedback stale")
	assert.NotContains(t, string(data), "skipped")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, TRACE, ParseLogLevel("trace"))
	assert.Equal(t, WARN, ParseLogLevel("warning"))
	assert.Equal(t, CRITICAL, ParseLogLevel("critical"))
	assert.Equal(t, INFO, ParseLogLevel("bogus"))
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}
