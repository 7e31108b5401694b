package layout

import "strings"

// Ellipsis marks truncated text.
const Ellipsis = "…"

// FitRow fits text onto a single visual line of at most maxWidth. Text
// that already fits is returned unchanged. Otherwise the result is the
// longest prefix of the input, trailing whitespace trimmed, that fits
// with the ellipsis appended, or the ellipsis alone when not even a
// one-character prefix fits.
func FitRow(m Measurer, text string, maxWidth float64, family string, size float64) string {
	if m.TextWidth(text, family, size) <= maxWidth {
		return text
	}
	return shrink(m, text, Ellipsis, maxWidth, family, size)
}

// shrink drops trailing characters from text until candidate+suffix fits
// within maxWidth, trimming trailing whitespace before each test. Falls
// back to the bare ellipsis when no non-empty prefix fits; the loop is
// bounded by the rune count of text, so a maxWidth narrower than the
// ellipsis glyph cannot spin.
func shrink(m Measurer, text, suffix string, maxWidth float64, family string, size float64) string {
	runes := []rune(text)
	for len(runes) > 0 {
		cand := strings.TrimRight(string(runes), " \t")
		if cand == "" {
			break
		}
		cand += suffix
		if m.TextWidth(cand, family, size) <= maxWidth {
			return cand
		}
		runes = runes[:len(runes)-1]
	}
	return Ellipsis
}
