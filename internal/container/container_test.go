package container

import (
	"io"
	"testing"

	"exodash/internal"
	"exodash/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Input:     config.InputConfig{SkipLines: 12, MethodThreshold: 3},
		Aggregate: config.AggregateConfig{TopQuantile: 0.8, MagnitudeBins: 10, TemperatureBins: 5},
		Output:    config.OutputConfig{Dashboard: "dash.svg", Title: "Test"},
		LogLevel:  "ERROR",
	}
}

func TestNew_WiresEverything(t *testing.T) {
	c, err := New(testConfig(), internal.NewLoggerWithWriter(internal.LogLevelError, io.Discard))
	require.NoError(t, err)

	assert.NotNil(t, c.Loader)
	assert.NotNil(t, c.Composer)
	assert.NotNil(t, c.Summary)
	assert.NotNil(t, c.Dashboard)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestThresholds(t *testing.T) {
	c, err := New(testConfig(), internal.NewLoggerWithWriter(internal.LogLevelError, io.Discard))
	require.NoError(t, err)

	th := c.Thresholds()
	assert.Equal(t, 12, th.SkipLines)
	assert.Equal(t, 3, th.MethodThreshold)
	assert.Equal(t, 0.8, th.TopQuantile)
	assert.Equal(t, 10, th.MagnitudeBins)
	assert.Equal(t, 5, th.TemperatureBins)
	assert.Equal(t, []int{1, 3, 1, 2}, th.Layout)
}
