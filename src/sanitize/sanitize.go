// Package sanitize cleans Jenkins console output for MCP consumption. It
// removes ANSI escape sequences and the hudson hyperlink annotations Jenkins
// embeds in console text, producing plain text suitable for tool responses.
package sanitize

import (
	"regexp"

	"github.com/charmbracelet/x/ansi"
)

// Console note annotations: \x1b[8mha:<base64>\x1b[0m markers inserted by
// hudson.console.ConsoleNote.
var consoleNotePattern = regexp.MustCompile(`\x1b\[8mha:[A-Za-z0-9+/=]*\x1b\[0m`)

// Console strips ANSI sequences and Jenkins console annotations.
func Console(s string) string {
	s = consoleNotePattern.ReplaceAllString(s, "")
	return ansi.Strip(s)
}
