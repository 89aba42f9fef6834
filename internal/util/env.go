// Package util holds small configuration helpers shared by the CrisisTriage
// binary and its packages.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// boolSpellings maps the accepted spellings of boolean settings such as
// PERSIST_ASSESSMENTS.
var boolSpellings = map[string]bool{
	"true":  true,
	"1":     true,
	"yes":   true,
	"on":    true,
	"false": false,
	"0":     false,
	"no":    false,
	"off":   false,
}

// ParseBoolEnv reads a boolean environment variable. Unset, empty, and
// unrecognized values fall back to defaultValue; spellings are matched
// case-insensitively after trimming whitespace.
func ParseBoolEnv(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, ok := boolSpellings[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		slog.Warn("ParseBoolEnv: unrecognized boolean value, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return v
}
