package config

import (
	"testing"

	"exodash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"EXODASH_OUTPUT", "EXODASH_SUMMARY", "EXODASH_MANIFEST", "EXODASH_TITLE",
		"EXODASH_SKIP_LINES", "EXODASH_METHOD_THRESHOLD", "EXODASH_MAG_BINS",
		"EXODASH_TEMP_BINS", "EXODASH_TOP_QUANTILE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 96, cfg.Input.SkipLines)
	assert.Equal(t, 20, cfg.Input.MethodThreshold)
	assert.Equal(t, 0.9, cfg.Aggregate.TopQuantile)
	assert.Equal(t, 60, cfg.Aggregate.MagnitudeBins)
	assert.Equal(t, 40, cfg.Aggregate.TemperatureBins)
	assert.Equal(t, "dashboard.svg", cfg.Output.Dashboard)
	assert.Empty(t, cfg.Output.Summary)
	assert.Equal(t, "INFO", cfg.LogLevel)

	assert.Equal(t, ',', cfg.Archive().Delimiter)
	assert.Equal(t, []int{1, 3, 1, 2}, cfg.Dashboard().Layout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXODASH_SKIP_LINES", "10")
	t.Setenv("EXODASH_METHOD_THRESHOLD", "5")
	t.Setenv("EXODASH_TOP_QUANTILE", "0.75")
	t.Setenv("EXODASH_MAG_BINS", "30")
	t.Setenv("EXODASH_OUTPUT", "out.html")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Archive().SkipLines)
	assert.Equal(t, 5, cfg.Archive().MethodThreshold)
	assert.Equal(t, 0.75, cfg.Aggregates().TopQuantile)
	assert.Equal(t, 30, cfg.Aggregates().MagnitudeBins)
	assert.Equal(t, "out.html", cfg.Output.Dashboard)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_UnparsableFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXODASH_TEMP_BINS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Aggregate.TemperatureBins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"quantile at one", "EXODASH_TOP_QUANTILE", "1"},
		{"negative quantile", "EXODASH_TOP_QUANTILE", "-0.2"},
		{"zero bins", "EXODASH_MAG_BINS", "0"},
		{"negative skip", "EXODASH_SKIP_LINES", "-1"},
		{"unknown level", "LOG_LEVEL", "verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
