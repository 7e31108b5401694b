// Package layout fits text into the fixed-size regions of a form
// template: greedy word wrapping, ellipsis truncation for single visual
// lines, and fixed-height row tables.
//
// All functions are pure: for the same inputs and measurer they return
// the same output. Widths are measured through the Measurer interface so
// the layout logic stays independent of the rendering backend.
package layout

// Measurer reports the rendered width of a string drawn in the given
// font family at the given size, in the same unit as the layout geometry
// (points for PDF templates).
type Measurer interface {
	TextWidth(text, family string, size float64) float64
}

// MeasureFunc adapts a plain function to the Measurer interface.
type MeasureFunc func(text, family string, size float64) float64

// TextWidth calls f.
func (f MeasureFunc) TextWidth(text, family string, size float64) float64 {
	return f(text, family, size)
}
