// Package config loads and validates worker configuration from the
// environment. Unlike the simple getters in pkg/config, every loader here
// reports whether a fallback was applied so the caller can surface warnings
// and drive the config health metrics.
package config

import (
	"fmt"
	"os"
	"time"
)

// ConfigLoadResult carries a loaded value together with its provenance.
// Value holds the parsed result (or the default when loading failed),
// Warnings describes each fallback in operator-readable form, and
// FallbackApplied is true when the default was substituted for a value that
// was present but invalid. An unset variable is not a fallback: defaults are
// the expected state for optional settings.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// fallbackResult builds the result for an env value that was present but
// could not be used. The warning names the variable, the rejected value,
// the reason, and the default that replaced it.
func fallbackResult(envKey, raw string, reason, defaultValue interface{}) ConfigLoadResult {
	return ConfigLoadResult{
		Value:           defaultValue,
		Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, reason, defaultValue)},
		FallbackApplied: true,
	}
}

func okResult(value interface{}) ConfigLoadResult {
	return ConfigLoadResult{Value: value}
}

// LoadEnvWithFallback reads a string variable and runs it through validator
// (nil skips validation). Invalid values fall back to defaultValue with a
// warning; loading never fails.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return okResult(defaultValue)
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, err, defaultValue)
		}
	}
	return okResult(value)
}

// LoadEnvDuration reads a Go duration string ("30s", "1h30m") from the
// environment. Parse or validation failures fall back to defaultValue with a
// warning; validator may be nil.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return okResult(defaultValue)
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallbackResult(envKey, raw, err, defaultValue)
	}

	if validator != nil {
		if err := validator(d); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return okResult(d)
}

// LoadEnvInt reads an integer from the environment. Parse or validation
// failures fall back to defaultValue with a warning; validator may be nil.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return okResult(defaultValue)
	}

	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return fallbackResult(envKey, raw, "invalid integer format", defaultValue)
	}

	if validator != nil {
		if err := validator(n); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return okResult(n)
}

// LoadEnvBool reads a boolean from the environment. It accepts 1/t/true and
// 0/f/false in the common casings; anything else falls back to defaultValue
// with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return okResult(defaultValue)
	}

	switch raw {
	case "1", "t", "T", "true", "TRUE", "True":
		return okResult(true)
	case "0", "f", "F", "false", "FALSE", "False":
		return okResult(false)
	default:
		return fallbackResult(envKey, raw, "invalid boolean format, expected 'true' or 'false'", defaultValue)
	}
}
