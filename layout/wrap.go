package layout

import "strings"

// Wrap splits text into lines no wider than maxWidth by greedy word
// accumulation. A word is a maximal run of non-whitespace; a single word
// that alone exceeds maxWidth is emitted unsplit as its own oversized
// line rather than hyphenated or broken.
//
// maxLines > 0 caps the number of completed lines; once the cap is
// reached at a line flush, the remaining words (including the one that
// forced the flush) are silently dropped and truncated reports true.
// Text that ends exactly at the cap is not truncation. maxLines <= 0
// means unlimited.
//
// Leading/trailing whitespace is trimmed; blank text yields nil and the
// caller must skip drawing.
func Wrap(m Measurer, text string, maxWidth float64, family string, size float64, maxLines int) (lines []string, truncated bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, false
	}

	var current string
	for _, w := range words {
		cand := w
		if current != "" {
			cand = current + " " + w
		}
		if m.TextWidth(cand, family, size) <= maxWidth {
			current = cand
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = w
		if maxLines > 0 && len(lines) >= maxLines {
			return lines, true
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines, false
}
