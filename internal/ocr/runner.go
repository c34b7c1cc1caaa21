package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Runner rasterizes a PDF and OCRs it page by page. A failing page
// contributes empty text instead of aborting the document.
type Runner struct {
	svc Service
	log *slog.Logger
}

func NewRunner(svc Service, log *slog.Logger) *Runner {
	return &Runner{svc: svc, log: log}
}

// ProcessPDF converts the PDF to page images via pdftoppm and runs OCR on
// each page in order, returning the joined text with page delimiters.
func (r *Runner) ProcessPDF(ctx context.Context, path string) (string, error) {
	images, cleanup, err := rasterize(ctx, path)
	if err != nil {
		return "", err
	}
	defer cleanup()

	var buf strings.Builder
	for i, imgPath := range images {
		pageNum := i + 1
		data, err := os.ReadFile(imgPath)
		if err != nil {
			r.log.Warn("read page image failed", "page", pageNum, "error", err)
			fmt.Fprintf(&buf, "--- Page %d ---\n\n", pageNum)
			continue
		}

		text, err := r.ocrWithRetry(ctx, data)
		if err != nil {
			r.log.Warn("ocr failed, emitting empty page", "page", pageNum, "error", err)
			text = ""
		}
		fmt.Fprintf(&buf, "--- Page %d ---\n%s\n\n", pageNum, text)
	}
	return buf.String(), nil
}

func (r *Runner) ocrWithRetry(ctx context.Context, image []byte) (string, error) {
	var text string
	var err error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		text, err = r.svc.Ocr(ctx, image)
		if err == nil || !IsRetryable(err) {
			break
		}
		r.log.Warn("retryable ocr error", "attempt", attempt, "error", err)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return text, err
}

// rasterize shells out to pdftoppm, writing one PNG per page into a temp
// directory. The returned paths are in page order.
func rasterize(ctx context.Context, path string) ([]string, func(), error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, nil, fmt.Errorf("pdftoppm not found in PATH (install poppler): %w", err)
	}

	dir, err := os.MkdirTemp("", "pagemark-ocr-*")
	if err != nil {
		return nil, nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	cmd := exec.CommandContext(ctx, "pdftoppm", "-png", "-r", "200", path, filepath.Join(dir, "page"))
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(out), 200))
	}

	matches, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil || len(matches) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm produced no page images")
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(matches)
	return matches, cleanup, nil
}
