package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-studio/internal/render"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available resume templates",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	for _, def := range render.Templates() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s (%s layout, %s theme)\n", def.ID, def.Name, def.Layout, def.Theme)
	}
	return nil
}
