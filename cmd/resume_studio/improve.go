package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-studio/internal/improve"
	"resume-studio/internal/observability"
)

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Improve resume content with AI assistance",
	Long:  "Sends the resume to the configured LLM to rewrite, tailor or shorten the content, and writes the improved document back as JSON.",
	RunE:  runImprove,
}

var (
	improveInput   string
	improveOutput  string
	improveJob     string
	improveRole    string
	improveMode    string
	improveVerbose bool
)

func init() {
	improveCmd.Flags().StringVarP(&improveInput, "in", "i", "", "Path to resume JSON file (required)")
	improveCmd.Flags().StringVarP(&improveOutput, "out", "o", "", "Path to output resume JSON file (defaults to stdout)")
	improveCmd.Flags().StringVar(&improveJob, "job", "", "Path to a job description text file to tailor against")
	improveCmd.Flags().StringVar(&improveRole, "role", "", "Target role to tailor the resume for")
	improveCmd.Flags().StringVar(&improveMode, "mode", "rewrite", "Improvement mode: rewrite, tailor, or shorten")
	improveCmd.Flags().BoolVarP(&improveVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := improveCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(improveCmd)
}

func runImprove(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	data, err := os.ReadFile(improveInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var jobDescription string
	if improveJob != "" {
		job, err := os.ReadFile(improveJob)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		jobDescription = string(job)
	}

	imp := improve.New(apiKey)
	result, err := imp.Improve(context.Background(), improve.Request{
		ResumeData:      data,
		JobDescription:  jobDescription,
		TargetRole:      improveRole,
		ImprovementType: improveMode,
	})
	if err != nil {
		return fmt.Errorf("improvement failed: %w", err)
	}

	if improveVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintResume(&result.ImprovedData)
		printer.PrintSuggestions(result.Suggestions)
	} else {
		for _, s := range result.Suggestions {
			fmt.Fprintf(cmd.ErrOrStderr(), "Suggestion: %s\n", s)
		}
	}

	return writeJSON(cmd, improveOutput, result.ImprovedData)
}
