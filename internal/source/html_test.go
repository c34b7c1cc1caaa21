package source

import (
	"context"
	"strings"
	"testing"

	"github.com/dgallion1/pagemark/internal/layout"
	"github.com/dgallion1/pagemark/internal/render"
)

func htmlPage(t *testing.T, doc string) string {
	t.Helper()
	src := &HTMLSource{Reader: strings.NewReader(doc), Name: "test.html"}
	pages, err := src.Pages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	blocks := layout.ReconstructPage(pages[0], layout.Options{})
	return render.Page(pages[0].Number, blocks, render.Options{Titles: true, Colors: true})
}

func TestHTMLHeadingsSurviveReconstruction(t *testing.T) {
	out := htmlPage(t, `<html><body>
		<h1>Main Title</h1>
		<h2>Subsection</h2>
		<p>Plain paragraph.</p>
	</body></html>`)

	if !strings.Contains(out, "# Main Title") {
		t.Errorf("missing h1 in output:\n%s", out)
	}
	if !strings.Contains(out, "## Subsection") {
		t.Errorf("missing h2 in output:\n%s", out)
	}
	if !strings.Contains(out, "Plain paragraph.") {
		t.Errorf("missing paragraph in output:\n%s", out)
	}
}

func TestHTMLInlineEmphasisBecomesStyledRuns(t *testing.T) {
	out := htmlPage(t, `<html><body><p>normal <b>bold</b> and <em>slanted</em></p></body></html>`)

	if !strings.Contains(out, "**bold**") {
		t.Errorf("missing bold run in output:\n%s", out)
	}
	if !strings.Contains(out, "*slanted*") {
		t.Errorf("missing italic run in output:\n%s", out)
	}
}

func TestHTMLSkipsScriptAndStyle(t *testing.T) {
	out := htmlPage(t, `<html><head><style>p{color:red}</style></head><body>
		<script>var x = 1;</script>
		<p>visible</p>
	</body></html>`)

	if strings.Contains(out, "var x") || strings.Contains(out, "color:red") {
		t.Errorf("script/style content leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("missing body text in output:\n%s", out)
	}
}

func TestHTMLCollapsesWhitespace(t *testing.T) {
	out := htmlPage(t, "<html><body><p>a\n\n   b\tc</p></body></html>")
	if !strings.Contains(out, "a b c") {
		t.Errorf("whitespace not collapsed:\n%s", out)
	}
}

func TestRowWriterSeparatesRows(t *testing.T) {
	w := newRowWriter(1)
	w.newRow(12)
	w.writeSpan("ab", "Helvetica", 12, [3]float64{0, 0, 0})
	w.newRow(12)
	w.writeSpan("cd", "Helvetica", 12, [3]float64{0, 0, 0})

	lines := layout.Segment(w.result())
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "ab" || lines[1].Text() != "cd" {
		t.Fatalf("lines = %q, %q", lines[0].Text(), lines[1].Text())
	}
}
