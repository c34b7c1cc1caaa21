// Package render emits the reconstructed layout as Markdown. Rendering is
// strictly append-only and page-ordered.
package render

import (
	"fmt"
	"strings"

	"github.com/dgallion1/pagemark/internal/layout"
)

// Options controls which structural signals are rendered.
type Options struct {
	Titles bool // render classified headings with # prefixes
	Colors bool // render inline bold/italic/color markup per style run
}

// Page renders one page's blocks. The page delimiter comment is emitted
// exactly once per page, also for pages with no blocks.
func Page(number int, blocks []layout.Block, opts Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<!-- Page %d -->\n\n", number)

	for _, b := range blocks {
		sb.WriteString(renderBlock(b, opts))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Document renders pages in order and joins them with a blank line.
func Document(pages []string) string {
	return strings.Join(pages, "\n")
}

func renderBlock(b layout.Block, opts Options) string {
	if opts.Titles && b.Heading {
		return strings.Repeat("#", b.Level) + " " + b.Text
	}
	if !opts.Colors {
		return b.Text
	}

	var sb strings.Builder
	for _, run := range b.Runs {
		sb.WriteString(renderRun(run))
	}
	return sb.String()
}

// renderRun applies inline markup to one style run: bold wins over
// italic, and non-black runs are wrapped in a color span.
func renderRun(run layout.StyleRun) string {
	text := run.Text
	switch {
	case run.Style.Bold():
		text = "**" + text + "**"
	case run.Style.Italic():
		text = "*" + text + "*"
	}
	if !run.Style.Color.IsBlack() {
		text = `<span style="color:` + run.Style.Color.Hex() + `">` + text + `</span>`
	}
	return text
}
