// Package output derives destination paths for rendered Markdown and
// writes the final buffer to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Writer writes rendered documents to disk. When Dir is empty, output
// goes next to the input file.
type Writer struct {
	Dir string
}

func New(dir string) (*Writer, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{Dir: dir}, nil
}

// Write stores data under a name derived from the input path and the
// given timestamp: <base>_<YYYYMMDD_HHMMSS>.md.
func (w *Writer) Write(inputPath string, data []byte, now time.Time) (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	path := filepath.Join(dir, DerivedName(inputPath, now))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// DerivedName builds the output filename for an input document path.
func DerivedName(inputPath string, now time.Time) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s.md", base, now.Format("20060102_150405"))
}
