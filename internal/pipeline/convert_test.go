package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dgallion1/pagemark/internal/glyph"
	"github.com/dgallion1/pagemark/internal/layout"
)

// fakeSource serves pre-built glyph pages.
type fakeSource struct {
	pages  []glyph.Page
	err    error
	called bool
}

func (f *fakeSource) Pages(ctx context.Context) ([]glyph.Page, error) {
	f.called = true
	return f.pages, f.err
}

func textPage(number int, lines ...string) glyph.Page {
	page := glyph.Page{Number: number}
	top := 50.0
	for _, line := range lines {
		x := 0.0
		for _, r := range line {
			page.Chars = append(page.Chars, glyph.Char{
				Text: string(r), Top: top, X0: x, Size: 11, Font: "helvetica", Color: glyph.Black,
			})
			x += 6
		}
		top += 22
	}
	return page
}

func TestConvertRendersPagesInOrder(t *testing.T) {
	var pages []glyph.Page
	for i := 1; i <= 8; i++ {
		pages = append(pages, textPage(i, fmt.Sprintf("page %d body", i)))
	}
	src := &fakeSource{pages: pages}

	result, err := Convert(context.Background(), src, ConvertOptions{PageWorkers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if result.Pages != 8 {
		t.Fatalf("pages = %d, want 8", result.Pages)
	}

	// Page delimiters must appear in ascending order regardless of
	// worker scheduling.
	last := -1
	for i := 1; i <= 8; i++ {
		idx := strings.Index(result.Markdown, fmt.Sprintf("<!-- Page %d -->", i))
		if idx < 0 {
			t.Fatalf("missing delimiter for page %d", i)
		}
		if idx <= last {
			t.Fatalf("page %d delimiter out of order", i)
		}
		last = idx
	}
}

func TestConvertInvalidPatternFailsBeforeExtraction(t *testing.T) {
	src := &fakeSource{pages: []glyph.Page{textPage(1, "hello")}}

	_, err := Convert(context.Background(), src, ConvertOptions{HeaderPattern: "([bad"})
	var perr *layout.PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PatternError, got %v", err)
	}
	if src.called {
		t.Fatal("source must not be read when the pattern is invalid")
	}
}

func TestConvertPropagatesSourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("corrupt document")}
	if _, err := Convert(context.Background(), src, ConvertOptions{}); err == nil {
		t.Fatal("expected source error")
	}
}

func TestConvertReportsPageProgress(t *testing.T) {
	src := &fakeSource{pages: []glyph.Page{
		textPage(1, "one"),
		textPage(2, "two"),
		textPage(3, "three"),
	}}

	var done atomic.Int32
	_, err := Convert(context.Background(), src, ConvertOptions{
		PageWorkers: 2,
		OnPage:      func(page int) { done.Add(1) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if done.Load() != 3 {
		t.Fatalf("OnPage fired %d times, want 3", done.Load())
	}
}

func TestConvertExtractsOutline(t *testing.T) {
	page := glyph.Page{Number: 1}
	x := 0.0
	for _, r := range "Overview" {
		page.Chars = append(page.Chars, glyph.Char{
			Text: string(r), Top: 40, X0: x, Size: 20, Font: "helvetica-bold", Color: glyph.Black,
		})
		x += 12
	}
	src := &fakeSource{pages: []glyph.Page{page}}

	result, err := Convert(context.Background(), src, ConvertOptions{TitleRecognize: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Headings) != 1 || result.Headings[0].Text != "Overview" || result.Headings[0].Level != 1 {
		t.Fatalf("headings = %+v", result.Headings)
	}
}

func TestConvertEmptyDocument(t *testing.T) {
	src := &fakeSource{}
	result, err := Convert(context.Background(), src, ConvertOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Pages != 0 || result.Markdown != "" {
		t.Fatalf("empty document result = %+v", result)
	}
}
