package source

import (
	"github.com/mattn/go-runewidth"
)

// TabStop is the tab width assumed by the bundled width oracle. Editors that
// render tabs differently should provide their own oracle instead.
const TabStop = 8

// CellDistance returns the number of display cells occupied by the rune
// columns [colStart, colEnd) on the given 0-based line. Tabs expand to the
// next TabStop boundary relative to the start of the line; wide runes count
// per their terminal cell width. Columns are clamped to the line's rune
// count, so out-of-range queries degrade instead of failing.
func (b *Buffer) CellDistance(line, colStart, colEnd int) int {
	if b == nil || colEnd <= colStart {
		return 0
	}
	runes := []rune(b.LineText(line))
	if colStart < 0 {
		colStart = 0
	}
	if colEnd > len(runes) {
		colEnd = len(runes)
	}
	if colEnd <= colStart {
		return 0
	}

	col := 0 // display column from start of line, needed for tab stops
	cells := 0
	for i, r := range runes {
		if i >= colEnd {
			break
		}
		var w int
		if r == '\t' {
			w = TabStop - (col % TabStop)
		} else {
			w = runewidth.RuneWidth(r)
		}
		if i >= colStart {
			cells += w
		}
		col += w
	}
	return cells
}
