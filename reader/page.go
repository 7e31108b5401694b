package reader

import "fmt"

// Rectangle is a PDF rectangle [llx lly urx ury].
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Width returns the rectangle's width.
func (r Rectangle) Width() float64 { return r.URX - r.LLX }

// Height returns the rectangle's height.
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// Page is a single document page.
type Page struct {
	Number    int
	MediaBox  Rectangle
	Resources Dict
	Contents  []Stream
}

// ContentStream returns the page's decoded content stream data; multiple
// streams are concatenated in order.
func (p *Page) ContentStream() ([]byte, error) {
	var out []byte
	for _, s := range p.Contents {
		decoded, err := decodeStream(s)
		if err != nil {
			return nil, fmt.Errorf("reader: decoding page %d content: %w", p.Number, err)
		}
		out = append(out, decoded...)
		out = append(out, '\n')
	}
	return out, nil
}

// parseRectangle parses a 4-element numeric array.
func parseRectangle(obj Object) (Rectangle, error) {
	arr, ok := obj.(Array)
	if !ok || len(arr) != 4 {
		return Rectangle{}, fmt.Errorf("reader: rectangle must be a 4-element array")
	}
	var vals [4]float64
	for i, v := range arr {
		switch n := v.(type) {
		case Integer:
			vals[i] = float64(n)
		case Real:
			vals[i] = float64(n)
		default:
			return Rectangle{}, fmt.Errorf("reader: rectangle element %d is not numeric", i)
		}
	}
	return Rectangle{LLX: vals[0], LLY: vals[1], URX: vals[2], URY: vals[3]}, nil
}

// buildPageList walks the page tree under /Root /Pages and flattens it.
func (d *Document) buildPageList() error {
	rootObj, err := d.deref(d.trailer["Root"])
	if err != nil {
		return fmt.Errorf("reader: resolving /Root: %w", err)
	}
	catalog, ok := rootObj.(Dict)
	if !ok {
		return fmt.Errorf("reader: missing /Root catalog")
	}

	pagesObj, err := d.deref(catalog["Pages"])
	if err != nil {
		return fmt.Errorf("reader: resolving /Pages: %w", err)
	}
	pagesDict, ok := pagesObj.(Dict)
	if !ok {
		return fmt.Errorf("reader: /Pages is not a dictionary")
	}

	d.pages = nil
	return d.walkPageTree(pagesDict, nil, 0)
}

// maxPageTreeDepth bounds the page-tree walk so a node listing itself
// (or an ancestor) as a kid cannot recurse forever.
const maxPageTreeDepth = 64

// walkPageTree collects leaf pages, carrying inheritable attributes
// (MediaBox, Resources) down from intermediate nodes.
func (d *Document) walkPageTree(node, inherited Dict, depth int) error {
	if depth >= maxPageTreeDepth {
		return fmt.Errorf("reader: page tree deeper than %d levels", maxPageTreeDepth)
	}
	merged := make(Dict, len(inherited)+2)
	for k, v := range inherited {
		merged[k] = v
	}
	for _, key := range []Name{"MediaBox", "Resources"} {
		if v, ok := node[key]; ok {
			merged[key] = v
		}
	}

	if node.GetName("Type") == "Page" {
		page := &Page{Number: len(d.pages) + 1}

		if mb, ok := merged["MediaBox"]; ok {
			if resolved, err := d.deref(mb); err == nil {
				if rect, err := parseRectangle(resolved); err == nil {
					page.MediaBox = rect
				}
			}
		}
		if res, ok := merged["Resources"]; ok {
			if resolved, err := d.deref(res); err == nil {
				page.Resources, _ = resolved.(Dict)
			}
		}
		if contents, ok := node["Contents"]; ok {
			resolved, err := d.deref(contents)
			if err != nil {
				return fmt.Errorf("reader: page %d contents: %w", page.Number, err)
			}
			switch c := resolved.(type) {
			case Stream:
				page.Contents = []Stream{c}
			case Array:
				for _, item := range c {
					obj, err := d.deref(item)
					if err != nil {
						continue
					}
					if s, ok := obj.(Stream); ok {
						page.Contents = append(page.Contents, s)
					}
				}
			}
		}

		d.pages = append(d.pages, page)
		return nil
	}

	kidsObj, err := d.deref(node["Kids"])
	if err != nil {
		return fmt.Errorf("reader: resolving /Kids: %w", err)
	}
	kids, _ := kidsObj.(Array)
	for _, kid := range kids {
		kidObj, err := d.deref(kid)
		if err != nil {
			return fmt.Errorf("reader: resolving page tree kid: %w", err)
		}
		if kidDict, ok := kidObj.(Dict); ok {
			if err := d.walkPageTree(kidDict, merged, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
