package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/pagemark/internal/source"
)

// Worker processes a single conversion job.
type Worker struct {
	log *slog.Logger
}

func NewWorker(log *slog.Logger) *Worker {
	return &Worker{log: log}
}

// Process runs the full conversion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 1: Resolve a glyph source for the document.
	job.SetStatus(StatusExtracting, "extracting glyphs")
	src, err := source.ForFile(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 2: Reconstruct layout page by page.
	job.SetStatus(StatusReconstructing, "reconstructing layout")
	opts := job.Options
	opts.OnPage = func(page int) {
		job.IncrPagesProcessed()
	}

	result, err := Convert(ctx, src, opts)
	if err != nil {
		log.Error("conversion failed", "error", err)
		job.AddError(fmt.Sprintf("convert: %s", err))
		job.SetStatus(StatusFailed, "reconstructing")
		return
	}

	// Phase 3: Publish the rendered document.
	job.SetStatus(StatusRendering, "assembling output")
	job.SetTotalPages(result.Pages)
	job.SetHeadings(len(result.Headings))
	job.SetMarkdown(result.Markdown)

	log.Info("conversion complete", "pages", result.Pages, "headings", len(result.Headings))
	job.SetStatus(StatusCompleted, "done")
}
