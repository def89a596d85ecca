package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"exodash/adapters/archive"
	"exodash/internal/aggregate"
	"exodash/internal/dashboard"
	"exodash/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `validate:"required"`
	Aggregate AggregateConfig `validate:"required"`
	Output    OutputConfig    `validate:"required"`
	LogLevel  string          `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// InputConfig holds archive reading settings
type InputConfig struct {
	SkipLines       int `validate:"gte=0"`
	MethodThreshold int `validate:"gte=0"`
}

// AggregateConfig holds aggregation settings
type AggregateConfig struct {
	TopQuantile     float64 `validate:"gt=0,lt=1"`
	MagnitudeBins   int     `validate:"gt=0"`
	TemperatureBins int     `validate:"gt=0"`
}

// OutputConfig holds output paths; Summary and Manifest are optional
type OutputConfig struct {
	Dashboard string `validate:"required"`
	Summary   string
	Manifest  string
	Title     string `validate:"required"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Input:     loadInputConfig(),
		Aggregate: loadAggregateConfig(),
		Output:    loadOutputConfig(),
		LogLevel:  strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadInputConfig() InputConfig {
	defaults := archive.DefaultConfig()
	return InputConfig{
		SkipLines:       getEnvIntOrDefault("EXODASH_SKIP_LINES", defaults.SkipLines),
		MethodThreshold: getEnvIntOrDefault("EXODASH_METHOD_THRESHOLD", defaults.MethodThreshold),
	}
}

func loadAggregateConfig() AggregateConfig {
	defaults := aggregate.DefaultConfig()
	return AggregateConfig{
		TopQuantile:     getEnvFloatOrDefault("EXODASH_TOP_QUANTILE", defaults.TopQuantile),
		MagnitudeBins:   getEnvIntOrDefault("EXODASH_MAG_BINS", defaults.MagnitudeBins),
		TemperatureBins: getEnvIntOrDefault("EXODASH_TEMP_BINS", defaults.TemperatureBins),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		Dashboard: getEnvOrDefault("EXODASH_OUTPUT", "dashboard.svg"),
		Summary:   getEnvOrDefault("EXODASH_SUMMARY", ""),
		Manifest:  getEnvOrDefault("EXODASH_MANIFEST", ""),
		Title:     getEnvOrDefault("EXODASH_TITLE", dashboard.DefaultConfig().Title),
	}
}

var validate = validator.New()

// Validate checks struct tags and reports the first failing field
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return errors.ConfigInvalid(fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Wrap(err, "validate configuration")
}

// Archive converts to loader settings
func (c *Config) Archive() archive.Config {
	cfg := archive.DefaultConfig()
	cfg.SkipLines = c.Input.SkipLines
	cfg.MethodThreshold = c.Input.MethodThreshold
	return cfg
}

// Aggregates converts to aggregation settings
func (c *Config) Aggregates() aggregate.Config {
	return aggregate.Config{
		TopQuantile:     c.Aggregate.TopQuantile,
		MagnitudeBins:   c.Aggregate.MagnitudeBins,
		TemperatureBins: c.Aggregate.TemperatureBins,
	}
}

// Dashboard converts to page settings
func (c *Config) Dashboard() dashboard.Config {
	cfg := dashboard.DefaultConfig()
	cfg.Title = c.Output.Title
	return cfg
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
