// Package stringutil provides string helpers for console output.
package stringutil

import "unicode/utf8"

// Truncate shortens s to at most maxLen runes, ending with "..." when
// anything was cut. For maxLen of 3 or less no ellipsis is added.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
