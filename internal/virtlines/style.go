package virtlines

import (
	"fmt"

	"virtlines/internal/diag"
)

// StyleID names a presentation style. The core never interprets style ids;
// the presenter maps them to concrete attributes (terminal colors, highlight
// groups, CSS classes). The empty id means "unstyled".
type StyleID string

// Segment is an atomic styled text unit.
type Segment struct {
	Text  string
	Style StyleID
}

// VirtualLine is one rendered annotation line: an ordered sequence of styled
// segments.
type VirtualLine []Segment

// Text returns the line's text with styling stripped.
func (v VirtualLine) Text() string {
	var out string
	for _, seg := range v {
		out += seg.Text
	}
	return out
}

// RenderBatch maps a 0-based source line number to the ordered virtual lines
// anchored immediately below it.
type RenderBatch map[int][]VirtualLine

// StyleProfile maps severities to style ids. Profiles are frozen
// configuration: build one per annotation source (or share a process-wide
// value) and pass it by value into Render. The maps inside must never be
// mutated after construction; Render only reads them.
type StyleProfile struct {
	// Text styles connector glyphs and message text per severity.
	Text map[diag.Severity]StyleID
	// Icon styles the severity icon.
	Icon map[diag.Severity]StyleID
	// Empty styles blank spacing cells when whole-line highlighting is off.
	Empty StyleID
}

// IconSet maps severities to a short icon string (typically one glyph).
type IconSet map[diag.Severity]string

var severities = [...]diag.Severity{diag.SevHint, diag.SevInfo, diag.SevWarn, diag.SevError}

func (p StyleProfile) validate(icons IconSet) error {
	for _, sev := range severities {
		if _, ok := p.Text[sev]; !ok {
			return fmt.Errorf("%w: no text style for %s", ErrBadProfile, sev)
		}
		if _, ok := p.Icon[sev]; !ok {
			return fmt.Errorf("%w: no icon style for %s", ErrBadProfile, sev)
		}
		if _, ok := icons[sev]; !ok {
			return fmt.Errorf("%w: no icon for %s", ErrBadProfile, sev)
		}
	}
	return nil
}
