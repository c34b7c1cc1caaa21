// Package source extracts positioned character glyphs from page-based
// documents. Each format has its own implementation behind the Source
// interface; the layout pipeline imposes no ordering requirement on a
// source beyond grouping glyphs by page number.
package source

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagemark/internal/glyph"
)

// Source yields the glyph pages of one document.
type Source interface {
	Pages(ctx context.Context) ([]glyph.Page, error)
}

// ExtractionError reports a malformed or unreadable document or page.
// The whole document aborts; no partial output is produced for it.
type ExtractionError struct {
	Doc  string
	Page int // 0 when the failure is not page-specific
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extract %s page %d: %v", e.Doc, e.Page, e.Err)
	}
	return fmt.Sprintf("extract %s: %v", e.Doc, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".html": true,
	".htm":  true,
}

// ForFile returns the appropriate source for a filename, reading document
// bytes from r.
func ForFile(r io.Reader, filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFSource{Reader: r, Name: filename}, nil
	case ".docx":
		return &DOCXSource{Reader: r, Name: filename}, nil
	case ".html", ".htm":
		return &HTMLSource{Reader: r, Name: filename}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
