package layout

import (
	"testing"

	"github.com/dgallion1/pagemark/internal/glyph"
)

func char(text string, top, x0, size float64) glyph.Char {
	return glyph.Char{Text: text, Top: top, X0: x0, Size: size, Font: "helvetica", Color: glyph.Black}
}

func TestSegmentEmptyPage(t *testing.T) {
	if lines := Segment(glyph.Page{Number: 1}); lines != nil {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
}

func TestSegmentOrdersGlyphsWithinLine(t *testing.T) {
	page := glyph.Page{Number: 1, Chars: []glyph.Char{
		char("c", 100, 30, 12),
		char("a", 100, 10, 12),
		char("b", 100, 20, 12),
	}}
	lines := Segment(page)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "abc" {
		t.Fatalf("line text = %q, want %q", got, "abc")
	}
}

func TestSegmentSplitsAtSizeRelativeThreshold(t *testing.T) {
	// Threshold for a 12pt glyph is 2.4pt. A 2.3pt offset continues the
	// line; a 2.4pt offset starts a new one.
	page := glyph.Page{Number: 1, Chars: []glyph.Char{
		char("a", 100, 10, 12),
		char("b", 102.3, 20, 12),
		char("c", 104.7, 30, 12),
	}}
	lines := Segment(page)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "ab" || lines[1].Text() != "c" {
		t.Fatalf("lines = %q, %q; want %q, %q", lines[0].Text(), lines[1].Text(), "ab", "c")
	}
}

func TestSegmentThresholdTracksLastAppendedGlyph(t *testing.T) {
	// The second glyph is larger, so the threshold for the third glyph
	// follows the larger size, not the first glyph's.
	page := glyph.Page{Number: 1, Chars: []glyph.Char{
		char("a", 100, 10, 10),
		char("b", 101.5, 20, 30), // within 2pt of "a", joins; threshold now 6pt
		char("c", 106, 30, 10),   // 4.5pt below "b": still the same line
		char("d", 113, 40, 10),   // 7pt below "c" (threshold 2pt): new line
	}}
	lines := Segment(page)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "abc" {
		t.Fatalf("first line = %q, want %q", lines[0].Text(), "abc")
	}
}

func TestSegmentDoesNotMutateInput(t *testing.T) {
	chars := []glyph.Char{
		char("b", 200, 10, 12),
		char("a", 100, 10, 12),
	}
	Segment(glyph.Page{Number: 1, Chars: chars})
	if chars[0].Text != "b" || chars[1].Text != "a" {
		t.Fatal("Segment reordered the caller's glyph slice")
	}
}
