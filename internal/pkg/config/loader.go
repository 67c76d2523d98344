// Package config provides fail-open configuration loading: invalid
// environment values fall back to defaults with a warning instead of
// aborting startup. A worker that starts on defaults beats one that
// crash-loops over a typo in a cron expression.
package config

import (
	"fmt"
	"os"
	"time"
)

// LoadResult holds a loaded configuration value together with any fallback
// warnings produced while loading it.
type LoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString reads a string environment variable, returning the default
// when unset. No validation is applied.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback reads a string environment variable and validates it.
// An invalid value falls back to the default and produces a warning; an
// unset variable silently uses the default.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return LoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, defaultValue, err)
		}
	}

	return LoadResult{Value: value}
}

// LoadEnvDuration reads a Go duration string ("30s", "10m", "1h30m") from an
// environment variable. Parse or validation failures fall back to the
// default with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, valueStr, defaultValue, err)
		}
	}

	return LoadResult{Value: value}
}

// LoadEnvInt reads an integer from an environment variable. Parse or
// validation failures fall back to the default with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, valueStr, defaultValue, err)
		}
	}

	return LoadResult{Value: value}
}

func fallbackResult(envKey, raw string, defaultValue interface{}, err error) LoadResult {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, raw, err, defaultValue)
	return LoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}
