// Package text provides the pure string helpers the terminal UI is built on:
// visible-width measurement, style stripping, truncation, and byte-count
// formatting. Nothing in here touches a terminal.
package text

import (
	"github.com/charmbracelet/x/ansi"
)

// StripStyles removes terminal style and color escape sequences, leaving
// only the characters a terminal would render.
func StripStyles(s string) string {
	return ansi.Strip(s)
}

// VisibleWidth returns the number of display cells s occupies on a
// terminal, ignoring any style or color escape sequences it contains.
// Wide runes count as two cells.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// Truncate shortens s to at most n visible cells. Styled strings are cut
// without breaking escape sequences. Strings already within n are returned
// unchanged, so the operation is idempotent.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= n {
		return s
	}
	return ansi.Truncate(s, n, "")
}
