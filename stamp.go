// Package formstamp stamps structured field values onto a fixed-layout
// PDF form template. The first page of the template receives an overlay
// of positioned text; every other page is carried into the output
// unmodified. Each stamping call is a pure transformation from
// (template bytes, raw record) to output bytes with no shared mutable
// state, so a single Stamper is safe for concurrent use.
package formstamp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"
	"go.uber.org/zap"

	"github.com/lvillar/formstamp/profile"
	"github.com/lvillar/formstamp/reader"
	"github.com/lvillar/formstamp/resolve"
)

// Stamper renders field values onto a form template. Construct once with
// New and reuse across requests; all configuration is immutable after
// construction.
type Stamper struct {
	profile *profile.Profile
	font    string
	size    float64
	now     func() time.Time
	log     *zap.Logger
}

// New creates a Stamper. With no options it stamps the default template
// profile in its configured font.
func New(opts ...Option) *Stamper {
	s := &Stamper{
		profile: profile.Default(),
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns the template profile the Stamper renders against.
func (s *Stamper) Profile() *profile.Profile {
	return s.profile
}

// Stamp resolves raw onto the profile's field set, draws the overlay on
// page 1 of the template, and returns the finished document bytes with
// the download filename FORM_<formId>.pdf. The page count of the output
// always equals the page count of the template; on any failure no output
// is returned at all.
func (s *Stamper) Stamp(templateBytes []byte, raw map[string]any) ([]byte, string, error) {
	filename := fmt.Sprintf("FORM_%s.pdf", formID(raw))

	record, err := resolve.Resolve(raw, s.profile, resolve.Options{Now: s.now})
	if err != nil {
		return nil, "", newStampError("Resolve", ErrResolution, err)
	}

	if len(templateBytes) == 0 {
		return nil, "", newStampError("Stamp", ErrTemplate, errors.New("empty template"))
	}
	doc, err := reader.ReadFrom(bytes.NewReader(templateBytes))
	if err != nil {
		return nil, "", newStampError("Stamp", ErrTemplate, err)
	}
	if doc.NumPages() == 0 {
		return nil, "", newStampError("Stamp", ErrTemplate, errors.New("template has no pages"))
	}
	first, err := doc.Page(1)
	if err != nil {
		return nil, "", newStampError("Stamp", ErrTemplate, err)
	}
	pageW, pageH := first.MediaBox.Width(), first.MediaBox.Height()
	if pageW <= 0 || pageH <= 0 {
		return nil, "", newStampError("Stamp", ErrTemplate, errors.New("unreadable first-page geometry"))
	}

	out, err := s.compose(templateBytes, doc, record)
	if err != nil {
		return nil, "", newStampError("Compose", ErrRender, err)
	}
	return out, filename, nil
}

// compose rebuilds the document: every template page is imported and laid
// down at its original size in order, and the overlay text is drawn on
// top of page 1's content.
func (s *Stamper) compose(templateBytes []byte, doc *reader.Document, record resolve.Record) (out []byte, err error) {
	// gofpdi reports malformed input by panicking.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("importing template pages: %v", r)
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(templateBytes))

	for i := 1; i <= doc.NumPages(); i++ {
		page, pErr := doc.Page(i)
		if pErr != nil {
			return nil, pErr
		}
		w, h := page.MediaBox.Width(), page.MediaBox.Height()
		if w <= 0 || h <= 0 {
			w = 595.28 // A4 default, matching the importer's fallback
			h = 841.89
		}

		tplID := imp.ImportPageFromStream(pdf, &rs, i, "/MediaBox")
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, w, h)

		if i == 1 {
			s.drawOverlay(pdf, record, h)
		}
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formID returns the trimmed formId from the record, or a fresh UUID.
func formID(raw map[string]any) string {
	if v, ok := raw["formId"].(string); ok {
		if id := strings.TrimSpace(v); id != "" {
			return id
		}
	}
	return uuid.NewString()
}
