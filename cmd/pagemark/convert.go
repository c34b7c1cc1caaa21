package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dgallion1/pagemark/internal/output"
	"github.com/dgallion1/pagemark/internal/pipeline"
	"github.com/dgallion1/pagemark/internal/source"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagFile           string
	flagOutputDir      string
	flagTitleRecognize bool
	flagColorRecognize bool
	flagHeaderPattern  string
	flagFooterPattern  string
	flagContiguousRuns bool
	flagPageWorkers    int
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a document to Markdown",
	Long: `Convert reads a PDF, DOCX, or HTML document, reconstructs its layout
from positioned characters, and writes a Markdown rendition next to the
input file (or into --output-dir).

Examples:
  pagemark convert -f report.pdf
  pagemark convert -f report.pdf --header-pattern 'CONFIDENTIAL' --footer-pattern 'Page \d+'
  pagemark convert -f notes.docx --title-recognize=false --output-dir ./out`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&flagFile, "file", "f", "", "Input document (required)")
	convertCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Output directory (default: next to the input)")
	convertCmd.Flags().BoolVar(&flagTitleRecognize, "title-recognize", true, "Detect headings and emit #-prefixed titles")
	convertCmd.Flags().BoolVar(&flagColorRecognize, "color-recognize", true, "Emit bold/italic and color styling")
	convertCmd.Flags().StringVar(&flagHeaderPattern, "header-pattern", "", "Regex dropping matching header lines")
	convertCmd.Flags().StringVar(&flagFooterPattern, "footer-pattern", "", "Regex dropping matching footer lines")
	convertCmd.Flags().BoolVar(&flagContiguousRuns, "contiguous-runs", false, "Keep style runs in reading order instead of grouping by style")
	convertCmd.Flags().IntVar(&flagPageWorkers, "page-workers", 4, "Pages processed in parallel")
	convertCmd.MarkFlagRequired("file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	f, err := os.Open(flagFile)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	src, err := source.ForFile(f, flagFile)
	if err != nil {
		return err
	}

	result, err := pipeline.Convert(context.Background(), src, pipeline.ConvertOptions{
		TitleRecognize: flagTitleRecognize,
		ColorRecognize: flagColorRecognize,
		HeaderPattern:  flagHeaderPattern,
		FooterPattern:  flagFooterPattern,
		ContiguousRuns: flagContiguousRuns,
		PageWorkers:    flagPageWorkers,
	})
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return err
	}
	path, err := writer.Write(flagFile, []byte(result.Markdown), time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Written: %s (%d pages)\n", path, result.Pages)
	for _, h := range result.Headings {
		for i := 1; i < h.Level; i++ {
			fmt.Fprint(os.Stdout, "  ")
		}
		fmt.Fprintf(os.Stdout, "- %s\n", h.Text)
	}
	return nil
}
