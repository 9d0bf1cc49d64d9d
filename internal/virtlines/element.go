package virtlines

import "virtlines/internal/diag"

// elemKind tags the variants of element.
type elemKind uint8

const (
	// elemSpacing is a run of blank display cells.
	elemSpacing elemKind = iota
	// elemDiagnostic marks a diagnostic with a non-blank message.
	elemDiagnostic
	// elemBlank marks a diagnostic whose message is blank; it contributes
	// only a connector glyph to diagnostics stacked before it.
	elemBlank
	// elemOverlap records that a diagnostic shares its column with the
	// previous one on the line.
	elemOverlap
)

// element is one entry in a line's layout stack. Per kind: width is set for
// spacing, diag for diagnostic and blank markers, sev for all marker kinds.
type element struct {
	kind  elemKind
	width int
	diag  diag.Diagnostic
	sev   diag.Severity
}

// lineStack is the ordered layout of one source line, built in
// ascending-column order and discarded after the render call.
type lineStack []element
