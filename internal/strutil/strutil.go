// Package strutil provides additional string manipulation functions.
package strutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Repeat returns a string consisting of count copies of s.
// Unlike strings.Repeat, it returns an empty string if count is negative.
func Repeat(s string, count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}

// Limit truncates s to the given display width, appending an ellipsis when
// something was cut. Width is measured in terminal cells, not bytes.
func Limit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad right-fills s with spaces up to the given display width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
