// Package stringutil provides string helpers shared across flowlint.
package stringutil

import "strings"

// Truncate shortens s to at most maxLen runes, replacing the tail with "..."
// when something was cut. maxLen values of 3 or less cut without the marker.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

// NormalizeWhitespace collapses every run of whitespace, newlines included,
// to a single space and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
