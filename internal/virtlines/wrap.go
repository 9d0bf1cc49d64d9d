package virtlines

import "unicode"

// Wrap greedily wraps text so that no returned line exceeds width
// characters, unless a single word does, in which case it is hard-broken at
// exactly width. Within each window of width characters the break happens at
// the last whitespace run, which is consumed; the text on either side is
// kept verbatim. The result always has at least one line.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	runes := []rune(text)
	lines := make([]string, 0, len(runes)/width+1)

	for len(runes) > width {
		// A break at k keeps runes[:start-of-run], so whitespace at index
		// width still yields a full-width line; scan from there down.
		brk, next := width, width
		for k := width; k > 0; k-- {
			if !unicode.IsSpace(runes[k]) {
				continue
			}
			// the break never moves below 1, so leading whitespace
			// cannot produce an empty line
			start := k
			for start > 1 && unicode.IsSpace(runes[start-1]) {
				start--
			}
			end := k + 1
			for end < len(runes) && unicode.IsSpace(runes[end]) {
				end++
			}
			brk, next = start, end
			break
		}
		lines = append(lines, string(runes[:brk]))
		runes = runes[next:]
	}
	return append(lines, string(runes))
}
