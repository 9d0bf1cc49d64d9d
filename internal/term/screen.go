package term

import (
	"strings"

	"github.com/fatih/color"

	"virtlines/internal/source"
	"virtlines/internal/virtlines"
)

// Screen renders an annotated buffer to text: every source line followed by
// the virtual lines anchored beneath it. Styling goes through the profile's
// lipgloss styles and is disabled when color output is off globally
// (color.NoColor honours --color flags and the NO_COLOR convention).
type Screen struct {
	store   *Store
	profile Profile
}

func NewScreen(store *Store, profile Profile) *Screen {
	return &Screen{store: store, profile: profile}
}

// VirtualLineText flattens one virtual line, styling each segment.
func (s *Screen) VirtualLineText(vl virtlines.VirtualLine) string {
	var b strings.Builder
	for _, seg := range vl {
		if color.NoColor {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(s.profile.Style(seg.Style).Render(seg.Text))
	}
	return b.String()
}

// RenderBuffer returns the buffer's text with annotation lines interleaved
// under their source lines.
func (s *Screen) RenderBuffer(buf source.BufferID, ns virtlines.NamespaceID) string {
	b := s.store.buffers.Get(buf)
	if b == nil {
		return ""
	}

	var out strings.Builder
	for line := 0; line < b.LineCount(); line++ {
		// skip the phantom line a trailing newline opens, unless it
		// carries annotations
		last := line == b.LineCount()-1
		text := b.LineText(line)
		virtual := s.store.Lines(buf, ns, line)
		if last && text == "" && len(virtual) == 0 {
			break
		}

		out.WriteString(text)
		out.WriteByte('\n')
		for _, vl := range virtual {
			out.WriteString(s.VirtualLineText(vl))
			out.WriteByte('\n')
		}
	}
	return out.String()
}
