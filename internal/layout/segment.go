// Package layout reconstructs document structure from positioned glyphs:
// it clusters glyphs into visual lines, partitions lines into style runs,
// classifies headings, merges adjacent headings, and filters repeating
// header/footer lines.
package layout

import (
	"sort"
	"strings"

	"github.com/dgallion1/pagemark/internal/glyph"
)

// lineTolerance is the fraction of the previous glyph's font size used as
// the vertical distance threshold when deciding whether a glyph continues
// the current line. The tolerance is recomputed per glyph from the last
// appended glyph, not from a document-wide constant.
const lineTolerance = 0.2

// Line is an ordered run of glyphs assigned to one visual row.
type Line struct {
	Page  int
	Chars []glyph.Char
}

// Text returns the concatenated glyph text in line order.
func (l Line) Text() string {
	var sb strings.Builder
	for _, c := range l.Chars {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Segment clusters a page's glyphs into visual lines. The input is not
// assumed to be sorted; glyphs are ordered by (top, x0) before the walk.
// A glyph starts a new line when its top is at least lineTolerance of the
// last appended glyph's size below that glyph's top.
func Segment(page glyph.Page) []Line {
	if len(page.Chars) == 0 {
		return nil
	}

	sorted := make([]glyph.Char, len(page.Chars))
	copy(sorted, page.Chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var lines []Line
	current := Line{Page: page.Number, Chars: []glyph.Char{sorted[0]}}

	for _, c := range sorted[1:] {
		last := current.Chars[len(current.Chars)-1]
		dist := c.Top - last.Top
		if dist < 0 {
			dist = -dist
		}
		if dist >= last.Size*lineTolerance {
			lines = append(lines, current)
			current = Line{Page: page.Number, Chars: []glyph.Char{c}}
			continue
		}
		current.Chars = append(current.Chars, c)
	}
	lines = append(lines, current)

	return lines
}
