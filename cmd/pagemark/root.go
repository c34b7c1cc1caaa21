package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pagemark",
	Short: "pagemark — reconstruct document layout into Markdown",
	Long: `pagemark converts positioned documents (PDF, DOCX, HTML) into Markdown
by reconstructing lines, style runs, and headings from character layout.

Usage:
  pagemark convert -f report.pdf
  pagemark ocr --file scan.pdf --service google
  pagemark serve`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
