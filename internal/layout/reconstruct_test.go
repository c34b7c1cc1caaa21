package layout

import (
	"testing"

	"github.com/dgallion1/pagemark/internal/glyph"
)

// row writes one line of equally styled glyphs at the given top.
func row(top float64, text, font string, size float64) []glyph.Char {
	var chars []glyph.Char
	x := 0.0
	for _, r := range text {
		chars = append(chars, glyph.Char{
			Text: string(r), Top: top, X0: x, Size: size, Font: font, Color: glyph.Black,
		})
		x += size
	}
	return chars
}

func TestReconstructPageClassifiesAndMerges(t *testing.T) {
	var chars []glyph.Char
	chars = append(chars, row(50, "Chapter", "Helvetica-Bold", 20)...)
	chars = append(chars, row(80, "One", "Helvetica-Bold", 20)...)
	chars = append(chars, row(120, "Body text here.", "Helvetica", 11)...)

	blocks := ReconstructPage(glyph.Page{Number: 1, Chars: chars}, Options{})
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if !blocks[0].Heading || blocks[0].Level != 1 || blocks[0].Text != "Chapter One" {
		t.Fatalf("merged heading = %+v", blocks[0])
	}
	if blocks[1].Heading || blocks[1].Text != "Body text here." {
		t.Fatalf("body block = %+v", blocks[1])
	}
}

func TestReconstructPageFiltersBeforeClassification(t *testing.T) {
	// The footer line sits between two headings. Dropping it restores
	// their adjacency, so they merge.
	var chars []glyph.Char
	chars = append(chars, row(50, "Chapter", "Helvetica-Bold", 20)...)
	chars = append(chars, row(80, "Page 3", "Helvetica", 9)...)
	chars = append(chars, row(110, "One", "Helvetica-Bold", 20)...)

	filter, err := NewLineFilter("", `Page \d+`)
	if err != nil {
		t.Fatal(err)
	}
	blocks := ReconstructPage(glyph.Page{Number: 1, Chars: chars}, Options{Filter: filter})
	if len(blocks) != 1 {
		t.Fatalf("expected 1 merged heading, got %d blocks", len(blocks))
	}
	if blocks[0].Text != "Chapter One" {
		t.Fatalf("merged text = %q, want %q", blocks[0].Text, "Chapter One")
	}
}

func TestReconstructPageEmpty(t *testing.T) {
	if blocks := ReconstructPage(glyph.Page{Number: 1}, Options{}); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}
