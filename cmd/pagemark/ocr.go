package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/pagemark/internal/config"
	"github.com/dgallion1/pagemark/internal/ocr"
	"github.com/spf13/cobra"
)

var (
	flagOcrFile    string
	flagOcrService string
)

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Extract text from a scanned document via a cloud OCR service",
	Long: `Ocr sends a PDF or image through a cloud OCR backend and prints the
recognized text. PDFs are rasterized page by page with pdftoppm.

Credentials come from the environment: GOOGLE_API_KEY for google,
AZURE_VISION_ENDPOINT and AZURE_VISION_KEY for azure, and the standard
AWS credential chain plus AWS_REGION for aws.

Examples:
  pagemark ocr --file scan.pdf --service google
  pagemark ocr --file photo.png --service azure`,
	RunE: runOcr,
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringVarP(&flagOcrFile, "file", "f", "", "Input PDF or image (required)")
	ocrCmd.Flags().StringVar(&flagOcrService, "service", "", fmt.Sprintf("OCR backend: %s", strings.Join(ocr.ServiceNames, ", ")))
	ocrCmd.MarkFlagRequired("file")
}

func runOcr(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	cfg := config.Load()

	name := flagOcrService
	if name == "" {
		name = cfg.OCRService
	}
	if name == "" {
		return fmt.Errorf("no OCR service selected; pass --service or set OCR_SERVICE")
	}

	ctx := context.Background()
	stats := ocr.NewStats(time.Hour)
	svc, err := ocr.New(ctx, name, ocr.Config{
		GoogleAPIKey:  cfg.GoogleAPIKey,
		AzureEndpoint: cfg.AzureEndpoint,
		AzureKey:      cfg.AzureKey,
		AWSRegion:     cfg.AWSRegion,
	}, stats)
	if err != nil {
		return err
	}

	var text string
	if strings.EqualFold(filepath.Ext(flagOcrFile), ".pdf") {
		runner := ocr.NewRunner(svc, log)
		text, err = runner.ProcessPDF(ctx, flagOcrFile)
	} else {
		var data []byte
		data, err = os.ReadFile(flagOcrFile)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		text, err = svc.Ocr(ctx, data)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, text)
	return nil
}
