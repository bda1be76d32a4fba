package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-studio/internal/normalize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a resume JSON file to the canonical shape",
	Long:  "Reads resume JSON in any supported legacy shape and writes the canonical document. Never fails on malformed input; unusable documents come back as the default resume.",
	RunE:  runNormalize,
}

var (
	normalizeInput  string
	normalizeOutput string
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInput, "in", "i", "", "Path to resume JSON file (required)")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Path to output resume JSON file (defaults to stdout)")

	if err := normalizeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(normalizeInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	return writeJSON(cmd, normalizeOutput, normalize.ResumeJSON(data))
}
