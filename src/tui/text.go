package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// VisualWidth returns the display width of text, accounting for multi-byte
// characters.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate trims text to a maximum visual width, appending an ellipsis when
// it had to cut.
func Truncate(s string, maxWidth int) string {
	s = strings.TrimSpace(s)
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth-3, "") + "..."
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// TruncateAndPad trims text to a column width and pads it back out, so table
// columns stay aligned.
func TruncateAndPad(s string, width int) string {
	s = Truncate(s, width)
	if w := VisualWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
