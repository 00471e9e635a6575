package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.1, cfg.IRRInitialGuess, 1e-12)
	assert.Equal(t, 100, cfg.IRRMaxIterations)
	assert.InDelta(t, 1e-6, cfg.IRRTolerance, 1e-18)
	assert.InDelta(t, 0.02, cfg.AnnualFeeRate, 1e-12)
	assert.Equal(t, 20, cfg.ProjectionQuarters)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IRR_MAX_ITERATIONS", "250")
	t.Setenv("ANNUAL_FEE_RATE", "0.015")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.IRRMaxIterations)
	assert.InDelta(t, 0.015, cfg.AnnualFeeRate, 1e-12)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero iterations", func(c *Config) { c.IRRMaxIterations = 0 }, true},
		{"negative tolerance", func(c *Config) { c.IRRTolerance = -1 }, true},
		{"negative fee rate", func(c *Config) { c.AnnualFeeRate = -0.01 }, true},
		{"zero horizon", func(c *Config) { c.ProjectionQuarters = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				IRRInitialGuess:    0.1,
				IRRMaxIterations:   100,
				IRRTolerance:       1e-6,
				AnnualFeeRate:      0.02,
				ProjectionQuarters: 20,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
