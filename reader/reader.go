// Package reader parses just enough of an existing PDF document (ISO
// 32000) to introspect it: page count, per-page geometry, and the text
// drawn in page content streams. It backs the stamping compositor, which
// needs the template's page list and first-page media box before
// overlaying, and the tests that assert on stamped output.
//
// Encrypted documents are rejected; decrypting templates is out of scope
// for a stamping pipeline.
package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEncrypted reports a document protected by an /Encrypt dictionary.
var ErrEncrypted = errors.New("reader: document is encrypted")

// Document is a parsed PDF document.
type Document struct {
	Version string // from the %PDF- header, e.g. "1.4"
	data    []byte
	xref    xrefTable
	trailer Dict
	pages   []*Page
}

// Open parses a PDF file from disk.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reader: opening %s: %w", filename, err)
	}
	return parse(data)
}

// ReadFrom parses a PDF document from a reader. The content is read
// entirely into memory for random access.
func ReadFrom(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reader: reading input: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Document, error) {
	doc := &Document{data: data, Version: parseVersion(data)}

	start, err := findStartXRef(data)
	if err != nil {
		return nil, err
	}
	doc.xref, doc.trailer, err = parseXRef(data, start, 0)
	if err != nil {
		return nil, err
	}
	if _, ok := doc.trailer["Encrypt"]; ok {
		return nil, ErrEncrypted
	}
	if err := doc.buildPageList(); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseVersion extracts the version from the "%PDF-x.y" header.
func parseVersion(data []byte) string {
	head := string(data[:min(20, len(data))])
	idx := strings.Index(head, "%PDF-")
	if idx < 0 {
		return ""
	}
	end := idx + 5
	for end < len(head) && head[end] != '\r' && head[end] != '\n' {
		end++
	}
	return head[idx+5 : end]
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page returns the page at the given 1-based index.
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("reader: page %d out of range [1, %d]", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

// resolve follows an indirect reference to its object value.
func (d *Document) resolve(ref Reference) (Object, error) {
	entry, ok := d.xref[ref.Number]
	if !ok || !entry.InUse {
		return Null{}, nil
	}
	if entry.Offset < 0 || int(entry.Offset) >= len(d.data) {
		return nil, fmt.Errorf("reader: object %d offset %d out of bounds", ref.Number, entry.Offset)
	}
	obj, err := newParser(d.data[entry.Offset:]).ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("reader: parsing object %d: %w", ref.Number, err)
	}
	return obj.Value, nil
}

// deref resolves obj if it is a Reference, otherwise returns it as-is.
func (d *Document) deref(obj Object) (Object, error) {
	if ref, ok := obj.(Reference); ok {
		return d.resolve(ref)
	}
	return obj, nil
}
