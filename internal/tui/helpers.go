package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to max cells with ellipsis
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	return ansi.Truncate(s, max, "...")
}

// padRight pads s with spaces to width cells
func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// clamp keeps a cursor inside [0, n)
func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
