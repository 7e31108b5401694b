package reader

import "strings"

// ExtractText returns the text drawn by this page's content stream: the
// string operands of Tj/TJ/'/" operators inside BT..ET blocks, separated
// by spaces at positioning operators.
//
// This is a basic extraction that assumes a byte-oriented (Latin-1-like)
// font encoding, which covers documents produced with the PDF standard
// fonts. Text drawn through form XObjects is not traversed.
func (p *Page) ExtractText() (string, error) {
	data, err := p.ContentStream()
	if err != nil {
		return "", err
	}
	return extractText(data), nil
}

func extractText(data []byte) string {
	var out strings.Builder
	inText := false

	i := 0
	for i < len(data) {
		for i < len(data) && isWhitespace(data[i]) {
			i++
		}
		if i >= len(data) {
			break
		}

		if op, n := peekOperator(data, i); n > 0 {
			switch op {
			case "BT":
				inText = true
			case "ET":
				inText = false
				out.WriteByte(' ')
			case "Td", "TD", "T*":
				if inText {
					out.WriteByte(' ')
				}
			}
			i += n
			continue
		}

		switch data[i] {
		case '(':
			raw, end, ok := scanLiteralString(data, i)
			if !ok {
				return strings.TrimSpace(out.String())
			}
			if inText {
				out.WriteString(decodeTextBytes(raw))
			}
			i = end
		case '<':
			if i+1 < len(data) && data[i+1] == '<' {
				i += 2
				continue
			}
			raw, end, ok := scanHexString(data, i)
			if !ok {
				return strings.TrimSpace(out.String())
			}
			if inText {
				out.WriteString(decodeTextBytes(raw))
			}
			i = end
		default:
			i++
		}
	}
	return strings.TrimSpace(out.String())
}

// peekOperator matches a two-character content stream operator at i,
// returning its length when it is properly delimited.
func peekOperator(data []byte, i int) (string, int) {
	if i+2 > len(data) {
		return "", 0
	}
	op := string(data[i : i+2])
	switch op {
	case "BT", "ET", "Td", "TD", "T*":
	default:
		return "", 0
	}
	if i+2 < len(data) && !isWhitespace(data[i+2]) && !isDelimiter(data[i+2]) {
		return "", 0
	}
	return op, 2
}

// decodeTextBytes maps string bytes to runes one-to-one, which matches
// the WinAnsi/Latin-1 range the standard fonts use for ASCII text.
func decodeTextBytes(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}
