package virtlines

import "virtlines/internal/source"

// NamespaceID keys one annotation source. Renders are idempotent per
// (namespace, buffer): each call fully replaces that key's annotations.
type NamespaceID string

// WidthOracle answers display-width queries for one buffer. The bundled
// implementation is source.Buffer; editor hosts supply their own to account
// for concealed text or inline decoration.
type WidthOracle interface {
	// CellDistance returns the display cells between rune columns
	// [colStart, colEnd) on the 0-based line.
	CellDistance(line, colStart, colEnd int) int
}

// Presenter is the host surface annotations are published to.
type Presenter interface {
	// IsLoaded reports whether the buffer currently exists.
	IsLoaded(buf source.BufferID) bool
	// SmallestViewportWidth returns the narrowest display width among
	// viewports showing the buffer, or false when it is not displayed.
	SmallestViewportWidth(buf source.BufferID) (int, bool)
	// Clear removes all annotations previously published under (buf, ns).
	Clear(buf source.BufferID, ns NamespaceID)
	// Present anchors the ordered lines immediately below the 0-based
	// source line.
	Present(buf source.BufferID, ns NamespaceID, line int, lines []VirtualLine)
}

// Config tunes one render call. The zero value is not useful; start from
// DefaultConfig and override fields.
type Config struct {
	// Width is the target total line width in cells. Non-positive values
	// fall back to the default.
	Width int
	// AutoWidth derives the width from the smallest viewport showing the
	// buffer, keeping Width as the fallback when the buffer is hidden.
	AutoWidth bool
	// HighlightWholeLine styles leading spacing with the diagnostic's
	// severity style instead of the empty style.
	HighlightWholeLine bool
}

// DefaultConfig returns the documented defaults: width 80, no auto width,
// whole-line highlighting on.
func DefaultConfig() Config {
	return Config{Width: 80, AutoWidth: false, HighlightWholeLine: true}
}
