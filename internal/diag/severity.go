package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHint is for subtle suggestions surfaced only on request.
	SevHint Severity = iota
	// SevInfo is for informational diagnostics.
	SevInfo
	// SevWarn is for warning diagnostics.
	SevWarn
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHint:
		return "HINT"
	case SevInfo:
		return "INFO"
	case SevWarn:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Valid reports whether s is one of the four defined levels.
func (s Severity) Valid() bool {
	return s <= SevError
}

// ParseSeverity maps a textual severity (as found in diagnostic payloads)
// to its Severity value. Matching is case-insensitive; "warn" and "warning"
// are both accepted.
func ParseSeverity(text string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "hint":
		return SevHint, nil
	case "info", "information":
		return SevInfo, nil
	case "warn", "warning":
		return SevWarn, nil
	case "error":
		return SevError, nil
	}
	return SevHint, fmt.Errorf("unknown severity %q", text)
}
