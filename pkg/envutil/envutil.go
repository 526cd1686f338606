// Package envutil reads bounded configuration values from the environment.
package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/githubnext/fieldcheck/pkg/logger"
)

// GetIntFromEnv returns the integer held by envVar when it parses and lies in
// [minValue, maxValue]; otherwise it returns defaultValue. Rejected values are
// reported on log when one is given.
func GetIntFromEnv(envVar string, defaultValue, minValue, maxValue int, log *logger.Logger) int {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Printf("Invalid %s=%q, using default %d: %v", envVar, raw, defaultValue, err)
		}
		return defaultValue
	}

	if value < minValue || value > maxValue {
		if log != nil {
			log.Printf("%s=%d outside [%d, %d], using default %d", envVar, value, minValue, maxValue, defaultValue)
		}
		return defaultValue
	}

	if log != nil {
		log.Printf("Using %s=%d", envVar, value)
	}
	return value
}

// IsTruthy reports whether envVar is set to a true-ish value
// ("1", "true", "yes", "on"; case-insensitive).
func IsTruthy(envVar string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envVar))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
