package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/pagemark/internal/glyph"
	"github.com/fumiama/go-docx"
)

// Synthetic typography for DOCX paragraphs. Heading styles map to bold
// fonts at sizes the geometric classifier recognizes as level 1 and 2;
// deeper heading styles stay below the heading threshold.
const (
	docxBodyFont    = "Calibri"
	docxHeadingFont = "Calibri-Bold"

	docxBodySize     = 11
	docxHeading1Size = 20
	docxHeading2Size = 16
	docxHeading3Size = 13
)

// DOCXSource synthesizes a glyph stream from a .docx document. DOCX has
// no page geometry, so the whole document becomes one page of rows.
type DOCXSource struct {
	Reader io.Reader
	Name   string
}

func (s *DOCXSource) Pages(ctx context.Context) ([]glyph.Page, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "pagemark-docx-*.docx")
	if err != nil {
		return nil, &ExtractionError{Doc: s.Name, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, s.Reader)
	if err != nil {
		tmp.Close()
		return nil, &ExtractionError{Doc: s.Name, Err: fmt.Errorf("write temp file: %w", err)}
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, &ExtractionError{Doc: s.Name, Err: fmt.Errorf("seek temp file: %w", err)}
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, &ExtractionError{Doc: s.Name, Err: fmt.Errorf("parse docx: %w", err)}
	}

	w := newRowWriter(1)
	for _, item := range doc.Document.Body.Items {
		if err := ctx.Err(); err != nil {
			return nil, &ExtractionError{Doc: s.Name, Err: err}
		}
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}

		font, size := docxBodyFont, float64(docxBodySize)
		switch headingLevel(para) {
		case 1:
			font, size = docxHeadingFont, docxHeading1Size
		case 2:
			font, size = docxHeadingFont, docxHeading2Size
		case 3, 4, 5, 6:
			font, size = docxHeadingFont, docxHeading3Size
		}

		w.newRow(size)
		w.writeSpan(text, font, size, glyph.Black)
	}

	return []glyph.Page{w.result()}, nil
}

func headingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	for level := 1; level <= 6; level++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", level)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", level)) {
			return level
		}
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
