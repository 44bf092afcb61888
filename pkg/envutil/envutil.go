// Package envutil reads typed settings from environment variables.
package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/githubnext/flowlint/pkg/logger"
)

// GetIntFromEnv returns the integer in envVar when it parses and lies within
// [minValue, maxValue]; otherwise it returns defaultValue. log may be nil.
func GetIntFromEnv(envVar string, defaultValue, minValue, maxValue int, log *logger.Logger) int {
	raw := strings.TrimSpace(os.Getenv(envVar))
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Printf("Ignoring %s=%q: not an integer", envVar, raw)
		}
		return defaultValue
	}
	if value < minValue || value > maxValue {
		if log != nil {
			log.Printf("Ignoring %s=%d: outside [%d, %d]", envVar, value, minValue, maxValue)
		}
		return defaultValue
	}

	if log != nil {
		log.Printf("Using %s=%d", envVar, value)
	}
	return value
}
