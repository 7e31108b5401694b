package formstamp

import (
	"strings"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/lvillar/formstamp/layout"
	"github.com/lvillar/formstamp/resolve"
)

// drawOverlay renders the resolved values at the profile's fixed
// geometry onto the current page. Row tables and wrap boxes draw first,
// then single-line anchors; the order is fixed for reproducibility.
// Fields whose resolved value is blank after trimming are skipped.
//
// Profile coordinates use the template's bottom-left origin and are
// flipped against the page height for gofpdf's top-left convention.
func (s *Stamper) drawOverlay(pdf *gofpdf.Fpdf, record resolve.Record, pageH float64) {
	family, size := s.profile.Font, s.profile.Size
	if s.font != "" {
		family = s.font
	}
	if s.size > 0 {
		size = s.size
	}
	pdf.SetFont(family, "", size)
	pdf.SetTextColor(0, 0, 0)
	// The standard fonts are cp1252; translate so the ellipsis and any
	// accented input survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	m := fpdfMeasurer{pdf: pdf, tr: tr}

	for _, rt := range s.profile.RowTables {
		val, ok := record[rt.Field]
		if !ok || len(val.Rows) == 0 {
			continue
		}
		cfg := layout.RowConfig{
			YStart:   rt.YStart,
			RowGap:   rt.RowGap,
			MaxRows:  rt.MaxRows,
			MaxWidth: rt.MaxWidth,
			LineGap:  rt.LineGap,
			Pad:      rt.Pad,
			Family:   family,
			Size:     size,
		}
		rows, dropped := layout.LayoutRows(m, val.Rows, cfg)
		if dropped > 0 {
			s.log.Debug("row table overflow",
				zap.String("field", rt.Field),
				zap.Int("dropped", dropped))
		}
		for _, row := range rows {
			for j, line := range row.Lines {
				if line == "" {
					continue
				}
				pdf.Text(rt.X, pageH-(row.Y-float64(j)*rt.LineGap), tr(line))
			}
		}
	}

	for _, wb := range s.profile.WrapBoxes {
		text := strings.TrimSpace(record[wb.Field].Text)
		if text == "" {
			continue
		}
		lines, truncated := layout.Wrap(m, text, wb.MaxWidth, family, size, wb.MaxLines)
		if truncated {
			s.log.Debug("wrap box overflow", zap.String("field", wb.Field))
		}
		for i, line := range lines {
			pdf.Text(wb.X, pageH-(wb.YTop-float64(i)*wb.LineGap), tr(line))
		}
	}

	for _, a := range s.profile.Anchors {
		text := strings.TrimSpace(record[a.Field].Text)
		if text == "" {
			continue
		}
		pdf.Text(a.X, pageH-a.Y, tr(text))
	}
}

// fpdfMeasurer adapts gofpdf's font metrics to the layout.Measurer
// interface, measuring the cp1252 form of the text as it will be drawn.
type fpdfMeasurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (m fpdfMeasurer) TextWidth(text, family string, size float64) float64 {
	m.pdf.SetFont(family, "", size)
	return m.pdf.GetStringWidth(m.tr(text))
}
