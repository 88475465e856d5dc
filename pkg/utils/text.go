// Package utils provides shared text and logging helpers.
package utils

import "unicode/utf8"

// Truncate returns s shortened to at most max runes, with "..." appended
// when anything was cut. Product names and categories are user supplied,
// so truncation counts runes rather than bytes. Non-positive max returns
// s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
