package layout

import (
	"math"
	"strings"
)

// RowConfig describes the geometry of a fixed-height row table. The
// vertical values use the template's coordinate convention (bottom-left
// origin): YStart is the baseline of the first row and each following
// row sits RowGap below the previous one.
type RowConfig struct {
	YStart   float64 // baseline of the first row
	RowGap   float64 // vertical distance between row origins
	MaxRows  int     // rows past this count are dropped
	MaxWidth float64 // width available to each line of a row
	LineGap  float64 // baseline distance between wrapped lines within a row
	Pad      float64 // vertical clearance kept before the next row
	Family   string
	Size     float64
}

// MaxLinesPerRow returns how many wrapped lines fit vertically inside one
// row slot before colliding with the next row. Always at least 1.
func (c RowConfig) MaxLinesPerRow() int {
	if c.LineGap <= 0 {
		return 1
	}
	n := 1 + int(math.Floor((c.RowGap-c.Pad)/c.LineGap))
	if n < 1 {
		return 1
	}
	return n
}

// Row is one laid-out table row: its baseline origin and its wrapped
// visual lines, top line first.
type Row struct {
	Y     float64
	Lines []string
}

// LayoutRows lays out items as stacked fixed-height rows. Only the first
// MaxRows items are kept; the count of dropped items is returned so the
// caller can log the overflow. Each item is collapsed to a single
// paragraph (embedded line breaks become spaces), wrapped to MaxWidth,
// and capped at MaxLinesPerRow lines; when the cap cuts an item, the last
// kept line is shrunk until it carries a trailing " …" within MaxWidth.
//
// Rows are fixed-height slots: the origin advances by RowGap per item no
// matter how many visual lines the item used.
func LayoutRows(m Measurer, items []string, cfg RowConfig) ([]Row, int) {
	dropped := 0
	if cfg.MaxRows > 0 && len(items) > cfg.MaxRows {
		dropped = len(items) - cfg.MaxRows
		items = items[:cfg.MaxRows]
	}

	maxLines := cfg.MaxLinesPerRow()
	rows := make([]Row, 0, len(items))

	for i, item := range items {
		paragraph := strings.Join(strings.Fields(item), " ")
		lines, _ := Wrap(m, paragraph, cfg.MaxWidth, cfg.Family, cfg.Size, 0)
		if len(lines) > maxLines {
			lines = lines[:maxLines]
			lines[maxLines-1] = shrink(m, lines[maxLines-1], " "+Ellipsis, cfg.MaxWidth, cfg.Family, cfg.Size)
		}
		rows = append(rows, Row{
			Y:     cfg.YStart - float64(i)*cfg.RowGap,
			Lines: lines,
		})
	}
	return rows, dropped
}
