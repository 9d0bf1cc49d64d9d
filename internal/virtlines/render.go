package virtlines

import (
	"strings"
	"unicode/utf8"
)

// Box-drawing glyphs connecting a diagnostic's column to its message.
const (
	glyphHorizontal = "─"
	glyphVertical   = "│"
	glyphCorner     = "└"
	glyphTee        = "┴"
	glyphBranch     = "├"
	glyphCross      = "┼"
)

// minMessageWidth is the floor below which the wrap width never drops.
const minMessageWidth = 20

type renderer struct {
	profile            StyleProfile
	icons              IconSet
	width              int
	highlightWholeLine bool
}

// renderStack walks one line's layout stack from last element to first and
// emits a block of virtual lines for every diagnostic marker. Walking in
// reverse puts the last stacked diagnostic nearest the source line, with
// earlier diagnostics' blocks following below it.
func (r renderer) renderStack(stack lineStack) []VirtualLine {
	out := make([]VirtualLine, 0, len(stack))

	for i := len(stack) - 1; i >= 0; i-- {
		cur := stack[i]
		if cur.kind != elemDiagnostic {
			continue
		}
		sevStyle := r.profile.Text[cur.diag.Severity]

		// Left context: everything stacked before this diagnostic turns
		// into the connector prefix. multi counts blank markers seen;
		// once nonzero, trailing spacing becomes a connecting line.
		prefix := make(VirtualLine, 0, i)
		multi := 0
		overlap := false
		for j := 0; j < i; j++ {
			el := stack[j]
			switch el.kind {
			case elemSpacing:
				if el.width == 0 {
					continue
				}
				if multi == 0 {
					style := r.profile.Empty
					if r.highlightWholeLine {
						style = sevStyle
					}
					prefix = append(prefix, Segment{Text: strings.Repeat(" ", el.width), Style: style})
				} else {
					prefix = append(prefix, Segment{Text: strings.Repeat(glyphHorizontal, el.width), Style: sevStyle})
				}
			case elemDiagnostic:
				if stack[j+1].kind == elemOverlap {
					// the overlapping diagnostic owns this column
					continue
				}
				prefix = append(prefix, Segment{Text: glyphVertical, Style: r.profile.Text[el.sev]})
			case elemBlank:
				g := glyphCorner
				if multi > 0 {
					g = glyphTee
				}
				prefix = append(prefix, Segment{Text: g, Style: r.profile.Text[el.sev]})
				multi++
			case elemOverlap:
				overlap = true
			}
		}

		var joint string
		switch {
		case overlap && multi > 0:
			joint = glyphCross
		case overlap:
			joint = glyphBranch
		case multi > 0:
			joint = glyphTee
		default:
			joint = glyphCorner
		}

		center := VirtualLine{
			{Text: joint + strings.Repeat(glyphHorizontal, 3), Style: sevStyle},
			{Text: r.icons[cur.diag.Severity], Style: r.profile.Icon[cur.diag.Severity]},
			{Text: "  ", Style: sevStyle},
		}

		// Continuation lines align under the message without repeating
		// the joint glyph; an overlapped column keeps its vertical bar.
		var continuation VirtualLine
		if overlap {
			continuation = VirtualLine{
				{Text: glyphVertical, Style: sevStyle},
				{Text: strings.Repeat(" ", 5), Style: r.profile.Empty},
			}
		} else {
			continuation = VirtualLine{
				{Text: strings.Repeat(" ", 6), Style: r.profile.Empty},
			}
		}

		prefixCells := 0
		for _, seg := range prefix {
			prefixCells += utf8.RuneCountInString(seg.Text)
		}
		avail := r.width - prefixCells
		if avail < minMessageWidth {
			avail = minMessageWidth
		}

		for k, msg := range Wrap(cur.diag.Title(), avail) {
			line := make(VirtualLine, 0, len(prefix)+len(center)+1)
			line = append(line, prefix...)
			if k == 0 {
				line = append(line, center...)
			} else {
				line = append(line, continuation...)
			}
			line = append(line, Segment{Text: msg, Style: sevStyle})
			out = append(out, line)
		}
	}
	return out
}
