package diag

import "strings"

// Diagnostic is one positioned annotation in a text buffer.
// Line and Col are 0-based; Col addresses a rune offset within the line.
// The struct is a plain value: renderers must not mutate diagnostics they
// are handed and must not retain them past a render call.
type Diagnostic struct {
	Line     int
	Col      int
	Severity Severity
	Message  string
	Code     string
}

// Blank reports whether the message is empty or whitespace-only.
// Blank diagnostics contribute only connector glyphs to rendered output.
func (d Diagnostic) Blank() bool {
	return strings.TrimSpace(d.Message) == ""
}

// Title returns the message prefixed with the code when one is present.
func (d Diagnostic) Title() string {
	if d.Code != "" {
		return d.Code + ": " + d.Message
	}
	return d.Message
}
