package source

import (
	"github.com/dgallion1/pagemark/internal/glyph"
)

// rowWriter synthesizes a glyph stream for formats without real geometry
// (DOCX, HTML). Each logical row gets its own top coordinate with a pitch
// of twice the row's font size, comfortably beyond the segmenter's
// tolerance, and glyphs advance left to right within the row.
type rowWriter struct {
	page  int
	top   float64
	x     float64
	chars []glyph.Char
}

func newRowWriter(page int) *rowWriter {
	return &rowWriter{page: page}
}

// newRow starts the next visual row sized for the given font size.
func (w *rowWriter) newRow(size float64) {
	w.top += size * 2
	w.x = 0
}

// writeSpan appends one glyph per rune at the current row position.
func (w *rowWriter) writeSpan(text, font string, size float64, color glyph.Color) {
	for _, r := range text {
		w.chars = append(w.chars, glyph.Char{
			Text:  string(r),
			Top:   w.top,
			X0:    w.x,
			Size:  size,
			Font:  font,
			Color: color,
			Page:  w.page,
		})
		w.x += size * 0.6
	}
}

func (w *rowWriter) result() glyph.Page {
	return glyph.Page{Number: w.page, Chars: w.chars}
}
