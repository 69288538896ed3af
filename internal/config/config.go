package config

import (
	"os"
	"strconv"
	"time"

	"biasaudit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	LogLevel   string
	Report     ReportConfig
	Simulation SimulationConfig
	Export     ExportConfig
}

// ReportConfig holds report composition settings
type ReportConfig struct {
	Title             string
	NullProbability   float64
	SignificanceAlpha float64
	IncludeHistory    bool
}

// SimulationConfig holds synthetic session settings
type SimulationConfig struct {
	Seed           int64
	Trials         int
	DetectionSkill float64
	Interval       time.Duration
}

// ExportConfig holds output settings
type ExportConfig struct {
	Dir         string
	Concurrency int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "INFO"),
		Report:     *loadReportConfig(),
		Simulation: *loadSimulationConfig(),
		Export:     *loadExportConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadReportConfig() *ReportConfig {
	return &ReportConfig{
		Title:             getEnvOrDefault("REPORT_TITLE", "AI Fairness & Bias Audit Report"),
		NullProbability:   getEnvFloatOrDefault("REPORT_NULL_PROBABILITY", 0.5),
		SignificanceAlpha: getEnvFloatOrDefault("REPORT_SIGNIFICANCE_ALPHA", 0.05),
		IncludeHistory:    getEnvBoolOrDefault("REPORT_INCLUDE_HISTORY", true),
	}
}

func loadSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Seed:           int64(getEnvIntOrDefault("SIM_SEED", 42)),
		Trials:         getEnvIntOrDefault("SIM_TRIALS", 20),
		DetectionSkill: getEnvFloatOrDefault("SIM_DETECTION_SKILL", 0.7),
		Interval:       getEnvDurationOrDefault("SIM_INTERVAL", time.Minute),
	}
}

func loadExportConfig() *ExportConfig {
	return &ExportConfig{
		Dir:         getEnvOrDefault("EXPORT_DIR", "./reports"),
		Concurrency: getEnvIntOrDefault("EXPORT_CONCURRENCY", 4),
	}
}

func validateConfig(config *Config) error {
	if p := config.Report.NullProbability; p <= 0 || p >= 1 {
		return errors.ConfigInvalid("REPORT_NULL_PROBABILITY must be strictly between 0 and 1")
	}
	if a := config.Report.SignificanceAlpha; a <= 0 || a >= 1 {
		return errors.ConfigInvalid("REPORT_SIGNIFICANCE_ALPHA must be strictly between 0 and 1")
	}
	if config.Simulation.Trials < 0 {
		return errors.ConfigInvalid("SIM_TRIALS cannot be negative")
	}
	if s := config.Simulation.DetectionSkill; s < 0 || s > 1 {
		return errors.ConfigInvalid("SIM_DETECTION_SKILL must be within [0,1]")
	}
	if config.Export.Concurrency < 1 {
		return errors.ConfigInvalid("EXPORT_CONCURRENCY must be at least 1")
	}
	if config.Export.Dir == "" {
		return errors.ConfigInvalid("EXPORT_DIR is required")
	}
	return nil
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
