package diag

import (
	"fmt"
	"sort"
	"strings"
)

type shortEntry struct {
	Severity string
	Code     string
	Line     int
	Col      int
	Message  string
}

// FormatShort renders diagnostics into a stable, single-line-per-entry
// representation suitable for CLI short output and for test assertions.
// Entries are sorted deterministically regardless of input order and
// positions are printed 1-based. Returns "" when the list is empty.
func FormatShort(diags []Diagnostic, path string) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]shortEntry, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, shortEntry{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Line:     d.Line + 1,
			Col:      d.Col + 1,
			Message:  strings.TrimSpace(d.Message),
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Col != dj.Col {
			return di.Col < dj.Col
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		if d.Code != "" {
			fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, path, d.Line, d.Col, d.Message)
		} else {
			fmt.Fprintf(&b, "%s %s:%d:%d %s", d.Severity, path, d.Line, d.Col, d.Message)
		}
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
