package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-studio/internal/normalize"
	"resume-studio/internal/pdfexport"
	"resume-studio/internal/render"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a resume JSON file to PDF",
	Long:  "Renders the resume with the selected template and prints it to PDF through headless Chrome.",
	RunE:  runExport,
}

var (
	exportInput    string
	exportOutput   string
	exportTemplate string
	exportHTMLOnly bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to resume JSON file (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "resume.pdf", "Path to output PDF file")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template id (defaults to the one stored in the resume metadata)")
	exportCmd.Flags().BoolVar(&exportHTMLOnly, "html", false, "Write rendered HTML instead of PDF")

	if err := exportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(exportInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	resume := normalize.ResumeJSON(data)

	templateID := exportTemplate
	if templateID == "" {
		templateID = resume.Metadata.Template
	}

	renderer, err := render.NewRenderer("")
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	html, err := renderer.HTML(resume, templateID)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	if exportHTMLOnly {
		if err := os.WriteFile(exportOutput, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write HTML file: %w", err)
		}
		fmt.Printf("HTML written to %s\n", exportOutput)
		return nil
	}

	pdfBytes, err := pdfexport.HTMLToPDF(context.Background(), html, resume.Metadata.PageSize)
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}

	if err := os.WriteFile(exportOutput, pdfBytes, 0644); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}

	fmt.Printf("PDF written to %s (%d bytes)\n", exportOutput, len(pdfBytes))
	return nil
}
