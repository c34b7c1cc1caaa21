package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/pagemark/internal/glyph"
	pdflib "github.com/ledongthuc/pdf"
)

// defaultPageHeight is used when a page carries no usable MediaBox.
const defaultPageHeight = 792 // US Letter in points

// PDFSource extracts styled character glyphs from a text-based PDF.
type PDFSource struct {
	Reader io.Reader
	Name   string
}

func (s *PDFSource) Pages(ctx context.Context) ([]glyph.Page, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "pagemark-pdf-*.pdf")
	if err != nil {
		return nil, &ExtractionError{Doc: s.Name, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, s.Reader); err != nil {
		tmp.Close()
		return nil, &ExtractionError{Doc: s.Name, Err: fmt.Errorf("write temp file: %w", err)}
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, &ExtractionError{Doc: s.Name, Err: err}
	}
	defer f.Close()

	var pages []glyph.Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, &ExtractionError{Doc: s.Name, Page: i, Err: err}
		}

		page := reader.Page(i)
		gp := glyph.Page{Number: i}
		if page.V.IsNull() {
			pages = append(pages, gp)
			continue
		}

		height := mediaBoxHeight(page)
		content := page.Content()
		for _, t := range content.Text {
			if t.S == "" {
				continue
			}
			gp.Chars = append(gp.Chars, glyph.Char{
				Text: t.S,
				// The library reports Y from the page bottom.
				Top:   height - t.Y,
				X0:    t.X,
				Size:  t.FontSize,
				Font:  t.Font,
				Color: glyph.Black, // fill color is not exposed
				Page:  i,
			})
		}
		pages = append(pages, gp)
	}

	return pages, nil
}

// mediaBoxHeight returns the page height from the MediaBox, falling back
// to US Letter when the box is absent or malformed.
func mediaBoxHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() < 4 {
		return defaultPageHeight
	}
	bottom := box.Index(1).Float64()
	top := box.Index(3).Float64()
	if top <= bottom {
		return defaultPageHeight
	}
	return top - bottom
}
