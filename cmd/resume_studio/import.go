package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-studio/internal/importer"
	"resume-studio/internal/observability"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a PDF or DOCX resume into structured JSON",
	Long:  "Extracts text from a resume document and structures it into resume JSON using the configured LLM.",
	RunE:  runImport,
}

var (
	importInput   string
	importOutput  string
	importVerbose bool
)

func init() {
	importCmd.Flags().StringVarP(&importInput, "in", "i", "", "Path to PDF or DOCX file (required)")
	importCmd.Flags().StringVarP(&importOutput, "out", "o", "", "Path to output resume JSON file (defaults to stdout)")
	importCmd.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	data, err := os.ReadFile(importInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	imp := importer.New(apiKey)
	result, err := imp.FromFile(context.Background(), importInput, data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if importVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintResume(&result.Data)
		for _, warning := range result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
		}
	}

	return writeJSON(cmd, importOutput, result.Data)
}

// writeJSON marshals v indented and writes it to path, or to stdout when
// path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if err := os.WriteFile(path, append(out, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
