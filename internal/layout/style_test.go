package layout

import (
	"testing"

	"github.com/dgallion1/pagemark/internal/glyph"
)

func styledChar(text, font string, size float64) glyph.Char {
	return glyph.Char{Text: text, Font: font, Size: size, Color: glyph.Black}
}

func TestGroupRunsSingleStyle(t *testing.T) {
	line := Line{Page: 1, Chars: []glyph.Char{
		styledChar("H", "helvetica", 12),
		styledChar("i", "helvetica", 12),
	}}
	runs := GroupRuns(line, RunsBySignature)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Text != "Hi" {
		t.Fatalf("run text = %q, want %q", runs[0].Text, "Hi")
	}
}

func TestGroupRunsBySignatureBucketsInterleavedStyles(t *testing.T) {
	// Interleaved plain/bold glyphs: signature grouping pulls every
	// plain glyph into the first run and every bold glyph into the
	// second, reordering the text.
	line := Line{Page: 1, Chars: []glyph.Char{
		styledChar("a", "helvetica", 12),
		styledChar("B", "helvetica-bold", 12),
		styledChar("c", "helvetica", 12),
		styledChar("D", "helvetica-bold", 12),
	}}
	runs := GroupRuns(line, RunsBySignature)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Text != "ac" || runs[1].Text != "BD" {
		t.Fatalf("runs = %q, %q; want %q, %q", runs[0].Text, runs[1].Text, "ac", "BD")
	}
	if runs[0].Style.Font != "helvetica" || runs[1].Style.Font != "helvetica-bold" {
		t.Fatalf("run order should be first-seen: got %q then %q", runs[0].Style.Font, runs[1].Style.Font)
	}
}

func TestGroupRunsContiguousPreservesReadingOrder(t *testing.T) {
	line := Line{Page: 1, Chars: []glyph.Char{
		styledChar("a", "helvetica", 12),
		styledChar("B", "helvetica-bold", 12),
		styledChar("c", "helvetica", 12),
		styledChar("D", "helvetica-bold", 12),
	}}
	runs := GroupRuns(line, RunsContiguous)
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}
	want := []string{"a", "B", "c", "D"}
	for i, w := range want {
		if runs[i].Text != w {
			t.Errorf("run %d = %q, want %q", i, runs[i].Text, w)
		}
	}
}

func TestGroupRunsContiguousMergesAdjacentSameStyle(t *testing.T) {
	line := Line{Page: 1, Chars: []glyph.Char{
		styledChar("a", "helvetica", 12),
		styledChar("b", "helvetica", 12),
		styledChar("C", "helvetica-bold", 12),
	}}
	runs := GroupRuns(line, RunsContiguous)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Text != "ab" || runs[1].Text != "C" {
		t.Fatalf("runs = %q, %q", runs[0].Text, runs[1].Text)
	}
}

func TestGroupRunsStyleDistinguishedByColor(t *testing.T) {
	red := glyph.Color{1, 0, 0}
	line := Line{Page: 1, Chars: []glyph.Char{
		{Text: "a", Font: "helvetica", Size: 12, Color: glyph.Black},
		{Text: "b", Font: "helvetica", Size: 12, Color: red},
	}}
	runs := GroupRuns(line, RunsBySignature)
	if len(runs) != 2 {
		t.Fatalf("expected color change to split runs, got %d runs", len(runs))
	}
}
