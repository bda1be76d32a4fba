package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-studio/internal/config"
	"resume-studio/internal/server"
)

var (
	servePort         int
	serveConfigPath   string
	serveSnapshotPath string
	serveTemplateDir  string
	serveVerbose      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for editing, validating, rendering, importing and exporting resumes.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveSnapshotPath, "snapshot", "", "Path where the resume snapshot is persisted")
	serveCmd.Flags().StringVar(&serveTemplateDir, "template-dir", "", "Directory of layout overrides, hot reloaded")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	cfg = cfg.MergeWithFlags(servePort, serveSnapshotPath, serveTemplateDir, apiKey, serveVerbose)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = os.Getenv("RESUME_STUDIO_SNAPSHOT")
	}
	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: GEMINI_API_KEY is not set; AI endpoints will return errors")
	}

	srv, err := server.New(server.Config{
		Port:                cfg.Port,
		APIKey:              cfg.APIKey,
		SnapshotPath:        cfg.SnapshotPath,
		TemplateOverrideDir: cfg.TemplateDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
