package layout_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lvillar/formstamp/layout"
)

// runeWidth measures one unit per rune regardless of font, which keeps
// the layout assertions exact.
var runeWidth = layout.MeasureFunc(func(text, family string, size float64) float64 {
	return float64(utf8.RuneCountInString(text))
})

func TestWrapLinesFitWidth(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	lines, truncated := layout.Wrap(runeWidth, text, 10, "Helvetica", 9, 0)
	if truncated {
		t.Error("unlimited wrap reported truncation")
	}
	if len(lines) == 0 {
		t.Fatal("expected wrapped lines")
	}
	for _, line := range lines {
		if w := runeWidth.TextWidth(line, "Helvetica", 9); w > 10 {
			t.Errorf("line %q measures %v, want <= 10", line, w)
		}
	}
	// No words lost or invented
	if got := strings.Join(lines, " "); got != text {
		t.Errorf("rejoined lines = %q, want %q", got, text)
	}
}

func TestWrapOversizedWordEmittedUnsplit(t *testing.T) {
	lines, _ := layout.Wrap(runeWidth, "a incomprehensibilities z", 10, "Helvetica", 9, 0)
	want := []string{"a", "incomprehensibilities", "z"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapBlankInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		if lines, _ := layout.Wrap(runeWidth, text, 10, "Helvetica", 9, 0); lines != nil {
			t.Errorf("Wrap(%q) = %v, want nil", text, lines)
		}
	}
}

func TestWrapMaxLinesCutsSilently(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	lines, truncated := layout.Wrap(runeWidth, text, 9, "Helvetica", 9, 2)
	if len(lines) != 2 {
		t.Fatalf("got %d lines %v, want 2", len(lines), lines)
	}
	if !truncated {
		t.Error("dropped words not reported as truncation")
	}
}

func TestWrapTruncationOnlyWhenWordsDropped(t *testing.T) {
	// Fills exactly two lines with nothing left over.
	lines, truncated := layout.Wrap(runeWidth, "one two three", 9, "Helvetica", 9, 2)
	if len(lines) != 2 {
		t.Fatalf("got %d lines %v, want 2", len(lines), lines)
	}
	if truncated {
		t.Error("exact fit at the cap reported as truncation")
	}
}

func TestWrapIdempotent(t *testing.T) {
	lines, _ := layout.Wrap(runeWidth, "alpha beta gamma delta epsilon", 12, "Helvetica", 9, 0)
	for _, line := range lines {
		again, _ := layout.Wrap(runeWidth, line, 12, "Helvetica", 9, 0)
		if len(again) != 1 || again[0] != line {
			t.Errorf("re-wrapping %q gave %v", line, again)
		}
	}
}

func TestWrapDeterministic(t *testing.T) {
	text := "same input same output every call"
	first, _ := layout.Wrap(runeWidth, text, 11, "Helvetica", 9, 3)
	for i := 0; i < 5; i++ {
		next, _ := layout.Wrap(runeWidth, text, 11, "Helvetica", 9, 3)
		if len(next) != len(first) {
			t.Fatalf("call %d: %v != %v", i, next, first)
		}
		for j := range first {
			if next[j] != first[j] {
				t.Fatalf("call %d line %d: %q != %q", i, j, next[j], first[j])
			}
		}
	}
}

func TestFitRowReturnsFittingTextUnchanged(t *testing.T) {
	if got := layout.FitRow(runeWidth, "short", 10, "Helvetica", 9); got != "short" {
		t.Errorf("got %q, want unchanged input", got)
	}
}

func TestFitRowTruncatesWithEllipsis(t *testing.T) {
	in := "this text is far too long for the row"
	got := layout.FitRow(runeWidth, in, 10, "Helvetica", 9)
	if w := runeWidth.TextWidth(got, "Helvetica", 9); w > 10 {
		t.Errorf("result %q measures %v, want <= 10", got, w)
	}
	if !strings.HasSuffix(got, layout.Ellipsis) {
		t.Errorf("result %q lacks ellipsis suffix", got)
	}
	prefix := strings.TrimSuffix(got, layout.Ellipsis)
	if !strings.HasPrefix(in, prefix) {
		t.Errorf("result prefix %q is not a prefix of the input", prefix)
	}
}

func TestFitRowNarrowerThanEllipsis(t *testing.T) {
	// maxWidth below even the ellipsis glyph must terminate with the
	// bare ellipsis rather than loop.
	if got := layout.FitRow(runeWidth, "anything", 0, "Helvetica", 9); got != layout.Ellipsis {
		t.Errorf("got %q, want bare ellipsis", got)
	}
}

func TestMaxLinesPerRow(t *testing.T) {
	tests := []struct {
		rowGap, pad, lineGap float64
		want                 int
	}{
		{22, 3, 11, 2},
		{22, 0, 11, 3},
		{11, 3, 11, 1},
		{22, 3, 0, 1},
		{5, 10, 11, 1},
	}
	for _, tt := range tests {
		cfg := layout.RowConfig{RowGap: tt.rowGap, Pad: tt.pad, LineGap: tt.lineGap}
		if got := cfg.MaxLinesPerRow(); got != tt.want {
			t.Errorf("MaxLinesPerRow(gap=%v pad=%v line=%v) = %d, want %d",
				tt.rowGap, tt.pad, tt.lineGap, got, tt.want)
		}
	}
}

func rowConfig() layout.RowConfig {
	return layout.RowConfig{
		YStart:   355,
		RowGap:   22,
		MaxRows:  14,
		MaxWidth: 9,
		LineGap:  11,
		Pad:      3,
		Family:   "Helvetica",
		Size:     9,
	}
}

func TestLayoutRowsDropsExcessItems(t *testing.T) {
	items := make([]string, 20)
	for i := range items {
		items[i] = "item"
	}
	rows, dropped := layout.LayoutRows(runeWidth, items, rowConfig())
	if len(rows) != 14 {
		t.Errorf("got %d rows, want 14", len(rows))
	}
	if dropped != 6 {
		t.Errorf("dropped = %d, want 6", dropped)
	}
}

func TestLayoutRowsFixedHeightSlots(t *testing.T) {
	rows, _ := layout.LayoutRows(runeWidth, []string{"a", "b", "c"}, rowConfig())
	for i, row := range rows {
		want := 355 - float64(i)*22
		if row.Y != want {
			t.Errorf("row %d origin = %v, want %v", i, row.Y, want)
		}
	}
}

func TestLayoutRowsCapsLinesWithEllipsis(t *testing.T) {
	// Wraps to three lines at width 9; the 22pt slot holds only two.
	item := "aaaa bbbb cccc dddd eeee ffff"
	rows, _ := layout.LayoutRows(runeWidth, []string{item}, rowConfig())
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	lines := rows[0].Lines
	if len(lines) != 2 {
		t.Fatalf("got %d lines %v, want 2", len(lines), lines)
	}
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last, layout.Ellipsis) {
		t.Errorf("last line %q lacks ellipsis", last)
	}
	if w := runeWidth.TextWidth(last, "Helvetica", 9); w > 9 {
		t.Errorf("last line %q measures %v, want <= 9", last, w)
	}
}

func TestLayoutRowsNormalizesLineBreaks(t *testing.T) {
	rows, _ := layout.LayoutRows(runeWidth, []string{"top\nbottom"}, layout.RowConfig{
		YStart: 100, RowGap: 22, MaxRows: 5, MaxWidth: 50, LineGap: 11, Pad: 3,
		Family: "Helvetica", Size: 9,
	})
	if len(rows) != 1 || len(rows[0].Lines) != 1 {
		t.Fatalf("unexpected layout %v", rows)
	}
	if rows[0].Lines[0] != "top bottom" {
		t.Errorf("got %q, want %q", rows[0].Lines[0], "top bottom")
	}
}
