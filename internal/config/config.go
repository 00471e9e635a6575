package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds engine configuration
type Config struct {
	IRRInitialGuess  float64
	IRRMaxIterations int
	IRRTolerance     float64

	AnnualFeeRate      float64 // Management fee as fraction of commitment base
	ProjectionQuarters int     // Default projection horizon

	LogLevel string
	DevMode  bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		IRRInitialGuess:    getEnvAsFloat("IRR_INITIAL_GUESS", 0.1),
		IRRMaxIterations:   getEnvAsInt("IRR_MAX_ITERATIONS", 100),
		IRRTolerance:       getEnvAsFloat("IRR_TOLERANCE", 1e-6),
		AnnualFeeRate:      getEnvAsFloat("ANNUAL_FEE_RATE", 0.02),
		ProjectionQuarters: getEnvAsInt("PROJECTION_QUARTERS", 20),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DevMode:            getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if configuration values are usable
func (c *Config) Validate() error {
	if c.IRRMaxIterations <= 0 {
		return fmt.Errorf("IRR_MAX_ITERATIONS must be positive")
	}
	if c.IRRTolerance <= 0 {
		return fmt.Errorf("IRR_TOLERANCE must be positive")
	}
	if c.AnnualFeeRate < 0 {
		return fmt.Errorf("ANNUAL_FEE_RATE must not be negative")
	}
	if c.ProjectionQuarters <= 0 {
		return fmt.Errorf("PROJECTION_QUARTERS must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
