package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-studio/internal/normalize"
	"resume-studio/internal/observability"
	"resume-studio/internal/schemas"
	"resume-studio/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume JSON file",
	Long:  "Runs schema diagnostics and content validation over a resume JSON file and reports issues plus the completeness score.",
	RunE:  runValidate,
}

var (
	validateInput  string
	validateStrict bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to resume JSON file (required)")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit non-zero when issues are found")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(validateInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())

	for _, diag := range schemas.DiagnoseResume(data) {
		fmt.Fprintf(cmd.OutOrStdout(), "Schema: %s\n", diag.String())
	}

	resume := normalize.ResumeJSON(data)
	issues := validate.Resume(&resume)

	printer.PrintIssues(issues)
	printer.PrintScore(validate.CompletenessScore(&resume))

	if validateStrict && len(issues) > 0 {
		return fmt.Errorf("validation found %d issue(s)", len(issues))
	}
	return nil
}
