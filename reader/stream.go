package reader

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"encoding/hex"
	"fmt"
	"io"
)

// decodeStream applies the stream's /Filter chain and returns the
// decoded data. Streams without a filter are returned as-is.
func decodeStream(s Stream) ([]byte, error) {
	filter, ok := s.Dict["Filter"]
	if !ok {
		return s.Data, nil
	}

	var chain []Name
	switch f := filter.(type) {
	case Name:
		chain = []Name{f}
	case Array:
		for _, item := range f {
			n, ok := item.(Name)
			if !ok {
				return nil, fmt.Errorf("reader: filter array contains non-name %T", item)
			}
			chain = append(chain, n)
		}
	default:
		return nil, fmt.Errorf("reader: unexpected /Filter type %T", filter)
	}

	parms := decodeParms(s.Dict, len(chain))

	data := s.Data
	for i, name := range chain {
		var err error
		switch name {
		case "FlateDecode":
			data, err = flateDecode(data)
			if err == nil {
				data, err = applyPredictor(data, parms[i])
			}
		case "ASCIIHexDecode":
			data, err = asciiHexDecode(data)
		case "ASCII85Decode":
			data, err = ascii85Decode(data)
		default:
			err = fmt.Errorf("unsupported filter %s", name)
		}
		if err != nil {
			return nil, fmt.Errorf("reader: applying filter %s: %w", name, err)
		}
	}
	return data, nil
}

// decodeParms aligns the /DecodeParms entry (a dict, an array of dicts,
// or absent) with the filter chain.
func decodeParms(d Dict, n int) []Dict {
	out := make([]Dict, n)
	switch p := d["DecodeParms"].(type) {
	case Dict:
		if n > 0 {
			out[0] = p
		}
	case Array:
		for i := 0; i < n && i < len(p); i++ {
			out[i], _ = p[i].(Dict)
		}
	}
	return out
}

// applyPredictor reverses the PNG row predictor (values 10..15) that
// cross-reference streams typically compress with. Predictor 1 or an
// absent parms dict is a no-op; TIFF predictor 2 is not used by the
// writers this reader targets.
func applyPredictor(data []byte, parms Dict) ([]byte, error) {
	if parms == nil {
		return data, nil
	}
	pred, _ := parms.GetInt("Predictor")
	if pred < 10 {
		return data, nil
	}
	columns, ok := parms.GetInt("Columns")
	if !ok || columns <= 0 {
		columns = 1
	}
	colors, ok := parms.GetInt("Colors")
	if !ok || colors <= 0 {
		colors = 1
	}
	bpc, ok := parms.GetInt("BitsPerComponent")
	if !ok || bpc <= 0 {
		bpc = 8
	}
	bpp := int((colors*bpc + 7) / 8)
	rowLen := int(columns)*bpp + 1 // leading filter byte per row
	if rowLen <= 1 || len(data)%rowLen != 0 {
		return nil, fmt.Errorf("predictor row length %d does not divide %d bytes", rowLen, len(data))
	}

	rows := len(data) / rowLen
	out := make([]byte, 0, rows*(rowLen-1))
	prev := make([]byte, rowLen-1)
	row := make([]byte, rowLen-1)
	for r := 0; r < rows; r++ {
		ft := data[r*rowLen]
		copy(row, data[r*rowLen+1:(r+1)*rowLen])
		switch ft {
		case 0: // None
		case 1: // Sub
			for i := bpp; i < len(row); i++ {
				row[i] += row[i-bpp]
			}
		case 2: // Up
			for i := range row {
				row[i] += prev[i]
			}
		case 3: // Average
			for i := range row {
				var left byte
				if i >= bpp {
					left = row[i-bpp]
				}
				row[i] += byte((int(left) + int(prev[i])) / 2)
			}
		case 4: // Paeth
			for i := range row {
				var left, upLeft byte
				if i >= bpp {
					left = row[i-bpp]
					upLeft = prev[i-bpp]
				}
				row[i] += paeth(left, prev[i], upLeft)
			}
		default:
			return nil, fmt.Errorf("unknown PNG filter type %d", ft)
		}
		out = append(out, row...)
		copy(prev, row)
	}
	return out, nil
}

// paeth is the PNG Paeth predictor function.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func flateDecode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib init: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	return buf.Bytes(), nil
}

func asciiHexDecode(data []byte) ([]byte, error) {
	var clean bytes.Buffer
	for _, b := range data {
		if b == '>' {
			break
		}
		if !isWhitespace(b) {
			clean.WriteByte(b)
		}
	}
	src := clean.Bytes()
	if len(src)%2 != 0 {
		src = append(src, '0')
	}
	dst := make([]byte, hex.DecodedLen(len(src)))
	if _, err := hex.Decode(dst, src); err != nil {
		return nil, fmt.Errorf("ascii hex decode: %w", err)
	}
	return dst, nil
}

func ascii85Decode(data []byte) ([]byte, error) {
	if end := bytes.Index(data, []byte("~>")); end >= 0 {
		data = data[:end]
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, ascii85.NewDecoder(bytes.NewReader(data))); err != nil {
		return nil, fmt.Errorf("ascii85 decode: %w", err)
	}
	return buf.Bytes(), nil
}
