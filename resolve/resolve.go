// Package resolve maps raw request records onto a template profile's
// field set. It trims input, substitutes placeholders for absent or
// blank values, coerces string-or-list inputs to the row shape the
// layout engine consumes, and implements labels mode for blank-form
// previews.
package resolve

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lvillar/formstamp/profile"
)

// ErrBadShape reports an input value whose shape has no reasonable
// interpretation for its field (for example a JSON object where a string
// or list is expected).
var ErrBadShape = errors.New("resolve: unsupported value shape")

// Kind discriminates the two shapes a resolved value can carry.
type Kind int

const (
	// Single is one string drawn at an anchor or into a wrap box.
	Single Kind = iota
	// Rows is an ordered list of rows for a row-table field.
	Rows
)

// Value is a resolved field value: a tagged variant of a single string or
// an ordered row list. Downstream layout code never sees the raw
// string-or-list input shapes.
type Value struct {
	Kind Kind
	Text string
	Rows []string
}

// Text builds a single-string Value.
func Text(s string) Value { return Value{Kind: Single, Text: s} }

// RowList builds a row-list Value.
func RowList(rows []string) Value { return Value{Kind: Rows, Rows: rows} }

// Record maps field names to resolved values. It is produced per request
// and consumed once by the overlay renderer.
type Record map[string]Value

// Options controls resolution.
type Options struct {
	// Now supplies the clock for the profile's date-field default.
	// time.Now is used when nil.
	Now func() time.Time
}

// LabelsKey is the payload key that switches on labels mode: when truthy,
// every field resolves to its label text (row tables to a fixed two-row
// sample) regardless of any supplied values.
const LabelsKey = "_labels"

// Resolve maps raw onto p's field set. Every field of the profile is
// present in the returned record: either its trimmed input value or its
// placeholder. Row-table fields accept both a discrete list and a
// line-break-delimited string, preferring the list; when neither yields a
// row, a single placeholder row is substituted so the area never renders
// blank.
func Resolve(raw map[string]any, p *profile.Profile, opts Options) (Record, error) {
	if truthy(raw[LabelsKey]) {
		return labels(p), nil
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	rec := make(Record, len(p.Fields()))
	for _, field := range p.Fields() {
		v := raw[p.Key(field)]

		if p.IsRowField(field) {
			rows, err := coerceRows(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field, err)
			}
			if len(rows) == 0 {
				rows = []string{p.Placeholder(field)}
			}
			rec[field] = RowList(rows)
			continue
		}

		text, err := coerceString(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		if text == "" {
			if field == p.DateField {
				text = now().UTC().Format("2006-01-02")
			} else {
				text = p.Placeholder(field)
			}
		}
		rec[field] = Text(text)
	}
	return rec, nil
}

// labels resolves every field to its label for the annotated blank-form
// preview. Row tables get a deterministic two-row sample.
func labels(p *profile.Profile) Record {
	rec := make(Record, len(p.Fields()))
	for _, field := range p.Fields() {
		l := p.Label(field)
		if p.IsRowField(field) {
			rec[field] = RowList([]string{l + " 1", l + " 2"})
		} else {
			rec[field] = Text(l)
		}
	}
	return rec
}

// coerceString renders a scalar input as a trimmed string. Lists are
// joined into one paragraph; nil and absent values become empty; maps
// have no single-string interpretation.
func coerceString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(t), nil
	case []string:
		return strings.TrimSpace(strings.Join(t, " ")), nil
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			s, err := coerceString(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.TrimSpace(strings.Join(parts, " ")), nil
	case map[string]any:
		return "", ErrBadShape
	default:
		// Numbers, booleans and other JSON scalars are opaque display
		// strings here; no numeric validation or rounding.
		return strings.TrimSpace(fmt.Sprint(t)), nil
	}
}

// coerceRows normalizes a row-table input to its list form. An explicit
// list is preferred as-is (blank entries trimmed away); a string is split
// into pseudo-rows on line breaks with blank rows dropped.
func coerceRows(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return cleanRows(t), nil
	case []any:
		rows := make([]string, 0, len(t))
		for _, item := range t {
			s, err := coerceString(item)
			if err != nil {
				return nil, err
			}
			rows = append(rows, s)
		}
		return cleanRows(rows), nil
	case string:
		return cleanRows(strings.Split(t, "\n")), nil
	case map[string]any:
		return nil, ErrBadShape
	default:
		s, err := coerceString(t)
		if err != nil {
			return nil, err
		}
		return cleanRows([]string{s}), nil
	}
}

// cleanRows trims every row and drops the blank ones.
func cleanRows(rows []string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		r = strings.TrimSpace(strings.TrimSuffix(r, "\r"))
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// truthy interprets the loose boolean shapes a JSON payload can carry.
// Absent, false, zero and empty string are false; so are the literal
// strings "false" and "0", which clients sending form-encoded booleans
// produce and plainly do not mean as true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		return s != "" && s != "false" && s != "0"
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}
