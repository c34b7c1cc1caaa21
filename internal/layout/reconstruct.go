package layout

import (
	"github.com/dgallion1/pagemark/internal/glyph"
)

// Options configures per-page reconstruction.
type Options struct {
	Filter  *LineFilter // nil keeps every line
	RunMode RunMode
}

// ReconstructPage runs the full per-page sequence: segment glyphs into
// lines, drop header/footer matches, group style runs, classify headings,
// and merge adjacent headings. Filtering happens before style grouping,
// so a dropped line never contributes to heading or merge logic.
func ReconstructPage(page glyph.Page, opts Options) []Block {
	var blocks []Block
	for _, line := range Segment(page) {
		if opts.Filter.Drop(line.Text()) {
			continue
		}
		runs := GroupRuns(line, opts.RunMode)
		blocks = append(blocks, Classify(line, runs))
	}
	return MergeHeadings(blocks)
}
