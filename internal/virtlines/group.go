package virtlines

import "virtlines/internal/diag"

// groupByLine folds position-sorted diagnostics into per-line layout stacks.
// The fold carries (prevLine, prevCol) across the whole sequence: the first
// diagnostic of a line gets its left margin, later ones get the gap to the
// previous connector, and a repeated column becomes an overlap marker
// instead of spacing.
func groupByLine(sorted []diag.Diagnostic, oracle WidthOracle) map[int]lineStack {
	stacks := make(map[int]lineStack)
	prevLine, prevCol := -1, 0

	for _, d := range sorted {
		var el element
		switch {
		case d.Line != prevLine:
			el = element{kind: elemSpacing, width: clampWidth(oracle.CellDistance(d.Line, 0, d.Col))}
		case d.Col != prevCol:
			// the previous connector glyph occupies one cell of [prevCol, col)
			el = element{kind: elemSpacing, width: clampWidth(oracle.CellDistance(d.Line, prevCol, d.Col) - 1)}
		default:
			el = element{kind: elemOverlap, sev: d.Severity}
		}

		stack := append(stacks[d.Line], el)
		if d.Blank() {
			stack = append(stack, element{kind: elemBlank, diag: d, sev: d.Severity})
		} else {
			stack = append(stack, element{kind: elemDiagnostic, diag: d, sev: d.Severity})
		}
		stacks[d.Line] = stack

		prevLine, prevCol = d.Line, d.Col
	}
	return stacks
}

func clampWidth(w int) int {
	if w < 0 {
		return 0
	}
	return w
}
