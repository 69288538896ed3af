package config

import (
	"testing"
	"time"

	"biasaudit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "REPORT_TITLE", "REPORT_NULL_PROBABILITY", "REPORT_SIGNIFICANCE_ALPHA",
		"REPORT_INCLUDE_HISTORY", "SIM_SEED", "SIM_TRIALS", "SIM_DETECTION_SKILL", "SIM_INTERVAL", "EXPORT_DIR", "EXPORT_CONCURRENCY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "AI Fairness & Bias Audit Report", cfg.Report.Title)
	assert.Equal(t, 0.5, cfg.Report.NullProbability)
	assert.Equal(t, 0.05, cfg.Report.SignificanceAlpha)
	assert.True(t, cfg.Report.IncludeHistory)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 20, cfg.Simulation.Trials)
	assert.Equal(t, 0.7, cfg.Simulation.DetectionSkill)
	assert.Equal(t, time.Minute, cfg.Simulation.Interval)
	assert.Equal(t, "./reports", cfg.Export.Dir)
	assert.Equal(t, 4, cfg.Export.Concurrency)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REPORT_TITLE", "Quarterly Audit")
	t.Setenv("REPORT_SIGNIFICANCE_ALPHA", "0.01")
	t.Setenv("REPORT_INCLUDE_HISTORY", "false")
	t.Setenv("SIM_TRIALS", "not-a-number")
	t.Setenv("SIM_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Quarterly Audit", cfg.Report.Title)
	assert.Equal(t, 0.01, cfg.Report.SignificanceAlpha)
	assert.False(t, cfg.Report.IncludeHistory)
	assert.Equal(t, 20, cfg.Simulation.Trials, "unparseable values fall back to defaults")
	assert.Equal(t, 30*time.Second, cfg.Simulation.Interval)
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	tests := map[string]string{
		"REPORT_NULL_PROBABILITY":   "1",
		"REPORT_SIGNIFICANCE_ALPHA": "0",
		"SIM_DETECTION_SKILL":       "1.2",
		"SIM_TRIALS":                "-3",
		"EXPORT_CONCURRENCY":        "0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
