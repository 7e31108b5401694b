package reader

import (
	"bytes"
	"fmt"
	"strconv"
)

// xrefEntry is one cross-reference table entry.
type xrefEntry struct {
	Offset     int64
	Generation int
	InUse      bool
}

// xrefTable maps object numbers to their file offsets.
type xrefTable map[int]xrefEntry

// maxXRefChain bounds /Prev chains so a cyclic file cannot recurse forever.
const maxXRefChain = 64

// findStartXRef locates the startxref offset near the end of the file.
func findStartXRef(data []byte) (int64, error) {
	tail := data
	if len(tail) > 1024 {
		tail = tail[len(tail)-1024:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("reader: startxref not found")
	}
	p := newParser(tail[idx+len("startxref"):])
	tok := p.readToken()
	offset, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("reader: invalid startxref offset %q: %w", tok, err)
	}
	return offset, nil
}

// parseXRef parses the cross-reference section at offset, following /Prev
// links for incremental updates. Entries from newer sections win. Both
// classic tables and cross-reference streams (PDF 1.5+) are handled.
func parseXRef(data []byte, offset int64, depth int) (xrefTable, Dict, error) {
	if depth >= maxXRefChain {
		return nil, nil, fmt.Errorf("reader: xref chain too deep")
	}
	if offset < 0 || int(offset) >= len(data) {
		return nil, nil, fmt.Errorf("reader: xref offset %d out of bounds", offset)
	}

	p := newParser(data[offset:])
	saved := p.pos
	if p.readToken() != "xref" {
		p.pos = saved
		return parseXRefStream(p, data, depth)
	}

	table := make(xrefTable)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			break
		}
		before := p.pos
		if p.readToken() == "trailer" {
			break
		}
		p.pos = before

		start, err := strconv.ParseInt(p.readToken(), 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("reader: xref subsection start: %w", err)
		}
		count, err := strconv.ParseInt(p.readToken(), 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("reader: xref subsection count: %w", err)
		}

		for i := int64(0); i < count; i++ {
			off, err := strconv.ParseInt(p.readToken(), 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("reader: xref entry offset: %w", err)
			}
			gen, err := strconv.ParseInt(p.readToken(), 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("reader: xref entry generation: %w", err)
			}
			kind := p.readToken()

			num := int(start + i)
			if _, exists := table[num]; !exists {
				table[num] = xrefEntry{Offset: off, Generation: int(gen), InUse: kind == "n"}
			}
		}
	}

	obj, err := p.ParseObject()
	if err != nil {
		return nil, nil, fmt.Errorf("reader: trailer dict: %w", err)
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return nil, nil, fmt.Errorf("reader: trailer is not a dictionary")
	}

	if prev, ok := trailer.GetInt("Prev"); ok {
		prevTable, _, err := parseXRef(data, prev, depth+1)
		if err != nil {
			return nil, nil, fmt.Errorf("reader: previous xref: %w", err)
		}
		for num, entry := range prevTable {
			if _, exists := table[num]; !exists {
				table[num] = entry
			}
		}
	}
	return table, trailer, nil
}

// parseXRefStream parses a cross-reference stream object: binary entries
// of /W-sized fields covering the /Index subsections.
func parseXRefStream(p *parser, data []byte, depth int) (xrefTable, Dict, error) {
	obj, err := p.ParseIndirectObject()
	if err != nil {
		return nil, nil, fmt.Errorf("reader: xref stream object: %w", err)
	}
	stream, ok := obj.Value.(Stream)
	if !ok {
		return nil, nil, fmt.Errorf("reader: xref section is neither a table nor a stream")
	}
	decoded, err := decodeStream(stream)
	if err != nil {
		return nil, nil, fmt.Errorf("reader: decoding xref stream: %w", err)
	}

	wArr := stream.Dict.GetArray("W")
	if len(wArr) != 3 {
		return nil, nil, fmt.Errorf("reader: xref stream /W must have 3 elements")
	}
	var widths [3]int
	for i, w := range wArr {
		n, ok := w.(Integer)
		if !ok {
			return nil, nil, fmt.Errorf("reader: xref stream /W element %d is not an integer", i)
		}
		widths[i] = int(n)
	}
	entrySize := widths[0] + widths[1] + widths[2]
	if entrySize <= 0 {
		return nil, nil, fmt.Errorf("reader: xref stream has empty entries")
	}

	var indices []int
	if idxArr := stream.Dict.GetArray("Index"); idxArr != nil {
		for _, v := range idxArr {
			if n, ok := v.(Integer); ok {
				indices = append(indices, int(n))
			}
		}
	} else {
		size, _ := stream.Dict.GetInt("Size")
		indices = []int{0, int(size)}
	}

	table := make(xrefTable)
	pos := 0
	for i := 0; i+1 < len(indices); i += 2 {
		start, count := indices[i], indices[i+1]
		for j := 0; j < count; j++ {
			if pos+entrySize > len(decoded) {
				break
			}
			var fields [3]int64
			for f := 0; f < 3; f++ {
				for k := 0; k < widths[f]; k++ {
					fields[f] = fields[f]<<8 | int64(decoded[pos])
					pos++
				}
			}

			kind := fields[0]
			if widths[0] == 0 {
				kind = 1 // default entry type
			}
			num := start + j
			switch kind {
			case 0:
				table[num] = xrefEntry{InUse: false, Generation: int(fields[2])}
			case 1:
				table[num] = xrefEntry{Offset: fields[1], Generation: int(fields[2]), InUse: true}
			default:
				// Type 2 entries live in object streams, which this
				// reader does not unpack; templates using them are
				// rejected when the page tree cannot be resolved.
			}
		}
	}

	if prev, ok := stream.Dict.GetInt("Prev"); ok {
		prevTable, _, err := parseXRef(data, prev, depth+1)
		if err != nil {
			return nil, nil, fmt.Errorf("reader: previous xref: %w", err)
		}
		for num, entry := range prevTable {
			if _, exists := table[num]; !exists {
				table[num] = entry
			}
		}
	}
	return table, stream.Dict, nil
}
