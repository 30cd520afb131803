// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the batch runtime settings.
type Config struct {
	ServiceName      string
	LogLevel         string
	TraceExporter    string
	TraceHost        string
	TraceProbability float64
	// InputPath is the batch file; empty means stdin.
	InputPath string
}

// Load reads envFile if it exists and then the process environment.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		ServiceName:      getEnv("SERVICE_NAME", "checkoutflow"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		TraceExporter:    getEnv("TRACE_EXPORTER", ""),
		TraceHost:        getEnv("OTEL_HOST", "localhost:4317"),
		TraceProbability: getEnvAsFloat("TRACE_PROBABILITY", 1.0),
		InputPath:        getEnv("CHECKOUT_INPUT", ""),
	}, nil
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
