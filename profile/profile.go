// Package profile defines the fixed field layout of each supported form
// template revision: where every logical field sits on page 1, its
// placeholder text, its human-readable label, and the request payload key
// it is fed from.
//
// A Profile is a process-wide read-only constant. Geometry never depends
// on request data; it is measured once per template revision and
// preserved verbatim, including coordinate overlaps between revisions.
package profile

// Anchor places a single-line field at a point. All coordinates are PDF
// points with a bottom-left origin, as measured on the template page.
type Anchor struct {
	Field string
	X, Y  float64
}

// WrapBox bounds a multi-line free-text field: text wraps at MaxWidth,
// lines descend from YTop by LineGap, and at most MaxLines lines render.
type WrapBox struct {
	Field    string
	X, YTop  float64
	MaxWidth float64
	LineGap  float64
	MaxLines int
}

// RowTable bounds a fixed-height list field. Each of up to MaxRows items
// occupies one RowGap-tall slot starting at YStart, wrapped to MaxWidth
// with LineGap between lines and Pad of clearance before the next row.
type RowTable struct {
	Field     string
	X, YStart float64
	RowGap    float64
	MaxRows   int
	MaxWidth  float64
	LineGap   float64
	Pad       float64
}

// Profile is the immutable layout of one template revision.
type Profile struct {
	ID   string
	Font string
	Size float64

	Anchors   []Anchor
	WrapBoxes []WrapBox
	RowTables []RowTable

	// Placeholders maps field name to the fallback display string used
	// when the input value is absent or blank.
	Placeholders map[string]string

	// Labels maps field name to the text rendered in labels mode.
	Labels map[string]string

	// Keys maps field name to the request payload key it is read from.
	Keys map[string]string

	// DateField names the field that defaults to the current date rather
	// than a placeholder when absent. Empty means no such field.
	DateField string
}

// Fields returns every field name in the profile's fixed draw order:
// row tables, then wrap boxes, then single-line anchors.
func (p *Profile) Fields() []string {
	names := make([]string, 0, len(p.RowTables)+len(p.WrapBoxes)+len(p.Anchors))
	for _, rt := range p.RowTables {
		names = append(names, rt.Field)
	}
	for _, wb := range p.WrapBoxes {
		names = append(names, wb.Field)
	}
	for _, a := range p.Anchors {
		names = append(names, a.Field)
	}
	return names
}

// IsRowField reports whether the named field is a row table.
func (p *Profile) IsRowField(field string) bool {
	for _, rt := range p.RowTables {
		if rt.Field == field {
			return true
		}
	}
	return false
}

// Placeholder returns the field's fallback display string.
func (p *Profile) Placeholder(field string) string {
	return p.Placeholders[field]
}

// Label returns the field's human-readable label, falling back to the
// field name itself.
func (p *Profile) Label(field string) string {
	if l, ok := p.Labels[field]; ok {
		return l
	}
	return field
}

// Key returns the payload key the field is read from, falling back to the
// field name itself.
func (p *Profile) Key(field string) string {
	if k, ok := p.Keys[field]; ok {
		return k
	}
	return field
}
