package reader

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Object is implemented by every PDF object type. The unexported method
// keeps the set of implementations closed.
type Object interface {
	pdfObject()
}

// Null is the PDF null object.
type Null struct{}

// Boolean is a PDF boolean.
type Boolean bool

// Integer is a PDF integer.
type Integer int64

// Real is a PDF real number.
type Real float64

// Name is a PDF name object (e.g. /Type, /Pages).
type Name string

// String is a PDF string, literal or hexadecimal.
type String struct {
	Value []byte
	IsHex bool
}

// Array is a PDF array.
type Array []Object

// Dict is a PDF dictionary keyed by names.
type Dict map[Name]Object

// Stream is a PDF stream: a dictionary plus raw (possibly compressed) data.
type Stream struct {
	Dict Dict
	Data []byte
}

// Reference is an indirect object reference ("N G R").
type Reference struct {
	Number     int
	Generation int
}

// IndirectObject is an indirect object definition ("N G obj ... endobj").
type IndirectObject struct {
	Reference
	Value Object
}

func (Null) pdfObject()           {}
func (Boolean) pdfObject()        {}
func (Integer) pdfObject()        {}
func (Real) pdfObject()           {}
func (Name) pdfObject()           {}
func (String) pdfObject()         {}
func (Array) pdfObject()          {}
func (Dict) pdfObject()           {}
func (Stream) pdfObject()         {}
func (Reference) pdfObject()      {}
func (IndirectObject) pdfObject() {}

// GetName returns the value of a name entry, or "".
func (d Dict) GetName(key Name) Name {
	n, _ := d[key].(Name)
	return n
}

// GetInt returns the value of a numeric entry as an int64.
func (d Dict) GetInt(key Name) (int64, bool) {
	switch n := d[key].(type) {
	case Integer:
		return int64(n), true
	case Real:
		return int64(n), true
	}
	return 0, false
}

// GetDict returns a sub-dictionary entry, or nil.
func (d Dict) GetDict(key Name) Dict {
	sub, _ := d[key].(Dict)
	return sub
}

// GetArray returns an array entry, or nil.
func (d Dict) GetArray(key Name) Array {
	arr, _ := d[key].(Array)
	return arr
}

// parser is a recursive descent parser over raw PDF syntax.
type parser struct {
	data  []byte
	pos   int
	depth int
}

// maxParseDepth bounds container nesting; legitimate documents stay far
// below it, while pathological input like an unclosed "[[[[..." would
// otherwise recurse until the stack dies.
const maxParseDepth = 256

func newParser(data []byte) *parser {
	return &parser{data: data}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// skipWhitespace advances past whitespace and % comments.
func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		b := p.data[p.pos]
		switch {
		case isWhitespace(b):
			p.pos++
		case b == '%':
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
		default:
			return
		}
	}
}

// readToken reads the next run of regular characters (keyword or number).
func (p *parser) readToken() string {
	p.skipWhitespace()
	start := p.pos
	for p.pos < len(p.data) && !isWhitespace(p.data[p.pos]) && !isDelimiter(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

// ParseObject parses the next PDF object at the current position.
func (p *parser) ParseObject() (Object, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, io.ErrUnexpectedEOF
	}
	if p.depth >= maxParseDepth {
		return nil, fmt.Errorf("reader: object nesting deeper than %d at position %d", maxParseDepth, p.pos)
	}
	p.depth++
	defer func() { p.depth-- }()

	switch b := p.data[p.pos]; {
	case b == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<':
		return p.parseDict()
	case b == '<':
		return p.parseHexString()
	case b == '(':
		return p.parseLiteralString()
	case b == '/':
		return p.parseName()
	case b == '[':
		return p.parseArray()
	case b == 't', b == 'f', b == 'n':
		return p.parseKeyword()
	case b >= '0' && b <= '9', b == '+', b == '-', b == '.':
		return p.parseNumberOrRef()
	default:
		return nil, fmt.Errorf("reader: unexpected character %q at position %d", b, p.pos)
	}
}

func (p *parser) parseName() (Name, error) {
	p.pos++ // skip '/'
	var buf bytes.Buffer
	for p.pos < len(p.data) {
		b := p.data[p.pos]
		if isWhitespace(b) || isDelimiter(b) {
			break
		}
		// #xx hex escape inside a name
		if b == '#' && p.pos+2 < len(p.data) {
			hi, lo := unhex(p.data[p.pos+1]), unhex(p.data[p.pos+2])
			if hi >= 0 && lo >= 0 {
				buf.WriteByte(byte(hi<<4 | lo))
				p.pos += 3
				continue
			}
		}
		buf.WriteByte(b)
		p.pos++
	}
	return Name(buf.String()), nil
}

func (p *parser) parseKeyword() (Object, error) {
	switch tok := p.readToken(); tok {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	case "null":
		return Null{}, nil
	default:
		return nil, fmt.Errorf("reader: unexpected keyword %q", tok)
	}
}

// parseNumberOrRef parses an integer, a real, or an indirect reference
// ("N G R" requires two-integer lookahead).
func (p *parser) parseNumberOrRef() (Object, error) {
	saved := p.pos
	tok := p.readToken()

	intVal, err := strconv.ParseInt(tok, 10, 64)
	if err == nil {
		after := p.pos
		p.skipWhitespace()
		if p.pos < len(p.data) && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
			genTok := p.readToken()
			if gen, err2 := strconv.ParseInt(genTok, 10, 64); err2 == nil {
				p.skipWhitespace()
				if p.pos < len(p.data) && p.data[p.pos] == 'R' {
					p.pos++
					return Reference{Number: int(intVal), Generation: int(gen)}, nil
				}
			}
		}
		p.pos = after
		return Integer(intVal), nil
	}

	realVal, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, fmt.Errorf("reader: invalid number %q at position %d", tok, saved)
	}
	return Real(realVal), nil
}

func (p *parser) parseLiteralString() (String, error) {
	raw, end, ok := scanLiteralString(p.data, p.pos)
	if !ok {
		return String{}, fmt.Errorf("reader: unterminated literal string at position %d", p.pos)
	}
	p.pos = end
	return String{Value: raw}, nil
}

func (p *parser) parseHexString() (String, error) {
	raw, end, ok := scanHexString(p.data, p.pos)
	if !ok {
		return String{}, fmt.Errorf("reader: unterminated hex string at position %d", p.pos)
	}
	p.pos = end
	return String{Value: raw, IsHex: true}, nil
}

func (p *parser) parseArray() (Array, error) {
	p.pos++ // skip '['
	var arr Array
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("reader: unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("reader: in array: %w", err)
		}
		arr = append(arr, obj)
	}
}

func (p *parser) parseDict() (Dict, error) {
	p.pos += 2 // skip '<<'
	d := make(Dict)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("reader: unterminated dictionary")
		}
		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return d, nil
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("reader: dict key is not a name at position %d", p.pos)
		}
		key, err := p.parseName()
		if err != nil {
			return nil, fmt.Errorf("reader: dict key: %w", err)
		}
		val, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("reader: dict value for /%s: %w", key, err)
		}
		d[key] = val
	}
}

// ParseIndirectObject parses "N G obj ... endobj", attaching stream data
// when the object header is followed by a stream keyword.
func (p *parser) ParseIndirectObject() (*IndirectObject, error) {
	numTok := p.readToken()
	num, err := strconv.ParseInt(numTok, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("reader: expected object number, got %q", numTok)
	}
	genTok := p.readToken()
	gen, err := strconv.ParseInt(genTok, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("reader: expected generation number, got %q", genTok)
	}
	if tok := p.readToken(); tok != "obj" {
		return nil, fmt.Errorf("reader: expected 'obj', got %q", tok)
	}

	val, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("reader: object %d %d: %w", num, gen, err)
	}

	p.skipWhitespace()
	if bytes.HasPrefix(p.data[p.pos:], []byte("stream")) {
		dict, ok := val.(Dict)
		if !ok {
			return nil, fmt.Errorf("reader: stream object %d %d has non-dict header", num, gen)
		}
		p.pos += len("stream")
		if p.pos < len(p.data) && p.data[p.pos] == '\r' {
			p.pos++
		}
		if p.pos < len(p.data) && p.data[p.pos] == '\n' {
			p.pos++
		}

		length := 0
		if n, ok := dict.GetInt("Length"); ok {
			length = int(n)
		}
		if p.pos+length > len(p.data) {
			return nil, fmt.Errorf("reader: stream data exceeds file bounds for object %d %d", num, gen)
		}
		data := make([]byte, length)
		copy(data, p.data[p.pos:p.pos+length])
		p.pos += length

		p.skipWhitespace()
		if bytes.HasPrefix(p.data[p.pos:], []byte("endstream")) {
			p.pos += len("endstream")
		}
		val = Stream{Dict: dict, Data: data}
	}

	p.skipWhitespace()
	if bytes.HasPrefix(p.data[p.pos:], []byte("endobj")) {
		p.pos += len("endobj")
	}

	return &IndirectObject{
		Reference: Reference{Number: int(num), Generation: int(gen)},
		Value:     val,
	}, nil
}

// scanLiteralString reads a (possibly nested, escaped) literal string
// starting at an opening parenthesis. Returns the decoded bytes and the
// position just past the closing parenthesis.
func scanLiteralString(data []byte, pos int) (raw []byte, end int, ok bool) {
	if pos >= len(data) || data[pos] != '(' {
		return nil, pos, false
	}
	pos++
	var buf bytes.Buffer
	depth := 1
	for pos < len(data) && depth > 0 {
		b := data[pos]
		pos++
		switch b {
		case '(':
			depth++
			buf.WriteByte(b)
		case ')':
			depth--
			if depth > 0 {
				buf.WriteByte(b)
			}
		case '\\':
			if pos >= len(data) {
				return nil, pos, false
			}
			esc := data[pos]
			pos++
			switch esc {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(esc)
			default:
				if esc >= '0' && esc <= '7' {
					oct := int(esc - '0')
					for i := 0; i < 2 && pos < len(data) && data[pos] >= '0' && data[pos] <= '7'; i++ {
						oct = oct*8 + int(data[pos]-'0')
						pos++
					}
					buf.WriteByte(byte(oct))
				} else {
					buf.WriteByte(esc)
				}
			}
		default:
			buf.WriteByte(b)
		}
	}
	return buf.Bytes(), pos, depth == 0
}

// scanHexString reads a <hex> string starting at the opening angle
// bracket. A trailing odd nibble is padded with zero per ISO 32000.
func scanHexString(data []byte, pos int) (raw []byte, end int, ok bool) {
	if pos >= len(data) || data[pos] != '<' {
		return nil, pos, false
	}
	pos++
	var buf bytes.Buffer
	hi := -1
	for pos < len(data) {
		b := data[pos]
		pos++
		if b == '>' {
			if hi >= 0 {
				buf.WriteByte(byte(hi << 4))
			}
			return buf.Bytes(), pos, true
		}
		if isWhitespace(b) {
			continue
		}
		v := unhex(b)
		if v < 0 {
			continue
		}
		if hi < 0 {
			hi = v
		} else {
			buf.WriteByte(byte(hi<<4 | v))
			hi = -1
		}
	}
	return nil, pos, false
}

// unhex returns the value of a hex digit, or -1.
func unhex(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}
