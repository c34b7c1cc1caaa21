package layout

import (
	"github.com/dgallion1/pagemark/internal/glyph"
)

// RunMode selects how a line's glyphs are partitioned into style runs.
type RunMode int

const (
	// RunsBySignature buckets glyphs by style signature in first-seen
	// order. Two separated spans with the same signature end up in the
	// same run, which reorders text when styles interleave mid-line.
	// This matches the historical output and is the default.
	RunsBySignature RunMode = iota

	// RunsContiguous opens a new run whenever the signature changes from
	// the immediately preceding glyph, preserving visual order.
	RunsContiguous
)

// StyleRun is a group of a line's glyphs sharing one style signature.
type StyleRun struct {
	Style glyph.Style
	Text  string
}

// GroupRuns partitions a line's glyphs into style runs according to mode.
func GroupRuns(line Line, mode RunMode) []StyleRun {
	if mode == RunsContiguous {
		return groupContiguous(line)
	}
	return groupBySignature(line)
}

func groupBySignature(line Line) []StyleRun {
	var runs []StyleRun
	index := make(map[glyph.Style]int)

	for _, c := range line.Chars {
		sig := glyph.StyleOf(c)
		i, ok := index[sig]
		if !ok {
			i = len(runs)
			index[sig] = i
			runs = append(runs, StyleRun{Style: sig})
		}
		runs[i].Text += c.Text
	}
	return runs
}

func groupContiguous(line Line) []StyleRun {
	var runs []StyleRun
	for _, c := range line.Chars {
		sig := glyph.StyleOf(c)
		if n := len(runs); n > 0 && runs[n-1].Style == sig {
			runs[n-1].Text += c.Text
			continue
		}
		runs = append(runs, StyleRun{Style: sig, Text: c.Text})
	}
	return runs
}
