package pipeline

import (
	"context"
	"sync"

	"github.com/dgallion1/pagemark/internal/glyph"
	"github.com/dgallion1/pagemark/internal/layout"
	"github.com/dgallion1/pagemark/internal/outline"
	"github.com/dgallion1/pagemark/internal/render"
	"github.com/dgallion1/pagemark/internal/source"
)

// ConvertOptions configures one document conversion.
type ConvertOptions struct {
	TitleRecognize bool
	ColorRecognize bool
	HeaderPattern  string
	FooterPattern  string
	ContiguousRuns bool

	// PageWorkers bounds per-document page parallelism. Values < 1 mean
	// sequential processing.
	PageWorkers int

	// OnPage, when set, is called after each page completes.
	OnPage func(page int)
}

// ConvertResult is the outcome of one document conversion.
type ConvertResult struct {
	Markdown string
	Pages    int
	Headings []outline.Heading
}

// Convert runs the full layout-reconstruction pipeline for one document:
// compile filter patterns (failing fast on bad patterns), extract glyph
// pages, reconstruct and render each page, and reassemble the rendered
// pages in original page order. Pages are independent, so they are
// processed with bounded parallelism, but the output buffer is only ever
// appended to in page order.
func Convert(ctx context.Context, src source.Source, opts ConvertOptions) (*ConvertResult, error) {
	filter, err := layout.NewLineFilter(opts.HeaderPattern, opts.FooterPattern)
	if err != nil {
		return nil, err
	}

	pages, err := src.Pages(ctx)
	if err != nil {
		return nil, err
	}

	layoutOpts := layout.Options{Filter: filter}
	if opts.ContiguousRuns {
		layoutOpts.RunMode = layout.RunsContiguous
	}
	renderOpts := render.Options{
		Titles: opts.TitleRecognize,
		Colors: opts.ColorRecognize,
	}

	workers := opts.PageWorkers
	if workers < 1 {
		workers = 1
	}

	rendered := make([]string, len(pages))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, page := range pages {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, page glyph.Page) {
			defer wg.Done()
			defer func() { <-sem }()
			blocks := layout.ReconstructPage(page, layoutOpts)
			rendered[i] = render.Page(page.Number, blocks, renderOpts)
			if opts.OnPage != nil {
				opts.OnPage(page.Number)
			}
		}(i, page)
	}
	wg.Wait()

	doc := render.Document(rendered)
	return &ConvertResult{
		Markdown: doc,
		Pages:    len(pages),
		Headings: outline.Extract([]byte(doc)),
	}, nil
}
