package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" DEBUG "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(LogLevelWarn, &buf)

	logger.Info("rows kept: %d", 12)
	logger.Debug("method %s dropped", "Astrometry")
	assert.Empty(t, buf.String())

	logger.Warn("empty table after filtering")
	assert.Contains(t, buf.String(), "empty table after filtering")
}

func TestLogger_WithTagsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(LogLevelInfo, &buf).With("component", "loader")

	logger.Info("loaded %d rows", 3)
	out := buf.String()
	assert.Contains(t, out, "loaded 3 rows")
	assert.Contains(t, out, "component=loader")
}
