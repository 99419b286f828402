package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/stitch/internal/config"
	"github.com/tsawler/stitch/version"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string

	cfgManager *config.Manager
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stitch",
	Short: "Reconstruct tables split across page breaks",
	Long: `Stitch reads document analysis results and rebuilds tables that the
provider reported in pieces because they ran over a page break.

The pipeline includes:
  - Detection of tables that continue on the next page
  - Merging of genuine splits, skipping tables separated by real content
  - Column typing and naming (offline, OpenAI or Gemini)
  - Export to CSV, XLSX, PostgreSQL or S3`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./stitch.yaml or ~/.stitch/stitch.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)",
	)

	// Load configuration and set up logging before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		setOutputFormat(outputFormat)
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgManager = mgr

		cfg := mgr.Get()
		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		logger, err = newLogger(level, cfg.Log.Format)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger writes to stderr so structured output on stdout stays clean.
func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
