package layout

import (
	"github.com/dgallion1/pagemark/internal/glyph"
)

// Heading size thresholds in points. A homogeneous bold line qualifies as
// a heading above minHeadingSize; above level1Size it becomes level 1.
const (
	minHeadingSize = 14
	level1Size     = 18
)

// Block is a classified line ready for merging and rendering.
type Block struct {
	Page    int
	Text    string     // glyph-order concatenation
	Runs    []StyleRun // grouping order
	Heading bool
	Level   int // 1 or 2 for headings, 0 for body
	Color   glyph.Color
}

// Classify builds a Block from a line and its style runs. A line is
// heading-eligible only when it holds exactly one style run; the run's
// font must carry a bold marker and its size must exceed minHeadingSize.
// Classification is a pure function of its inputs.
func Classify(line Line, runs []StyleRun) Block {
	b := Block{
		Page: line.Page,
		Text: line.Text(),
		Runs: runs,
	}

	if len(runs) != 1 {
		return b
	}
	sig := runs[0].Style
	if !sig.Bold() || sig.Size <= minHeadingSize {
		return b
	}

	b.Heading = true
	b.Level = 2
	if sig.Size > level1Size {
		b.Level = 1
	}
	b.Color = sig.Color
	return b
}

// MergeHeadings coalesces strictly adjacent headings with equal level and
// equal color into one block, joining text with a single space. The scan
// only looks forward one block at a time and never reorders; blocks must
// all belong to the same page.
func MergeHeadings(blocks []Block) []Block {
	var out []Block
	for i := 0; i < len(blocks); i++ {
		cur := blocks[i]
		if cur.Heading {
			// Copy the run slice so merging never mutates the input blocks.
			cur.Runs = append([]StyleRun(nil), cur.Runs...)
			for i+1 < len(blocks) {
				next := blocks[i+1]
				if !next.Heading || next.Level != cur.Level || next.Color != cur.Color {
					break
				}
				cur.Text += " " + next.Text
				if len(cur.Runs) == 1 && len(next.Runs) == 1 {
					cur.Runs[0].Text += " " + next.Runs[0].Text
				}
				i++
			}
		}
		out = append(out, cur)
	}
	return out
}
