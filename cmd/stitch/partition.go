package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/stitch"
	"github.com/tsawler/stitch/model"
)

var (
	partitionContent  bool
	partitionMarkdown bool
)

var partitionCmd = &cobra.Command{
	Use:   "partition <file>",
	Short: "Show which tables of an analysis result are merged",
	Long: `Partition runs detection and merging only and prints the merged and
standalone tables with their spans and titles. Nothing is named or exported.
With --markdown every reconstructed table is printed as a pipe table instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cfgManager.Get()

		part, warnings, err := stitch.Open(args[0]).
			TitleProximity(cfg.Tables.TitleProximity).
			MaxSeparation(cfg.Tables.MaxSeparation).
			WithLogger(logger).
			Partition()
		if err != nil {
			return err
		}

		if partitionMarkdown {
			return writeMarkdown(os.Stdout, part)
		}
		if !partitionContent {
			stripContent(part.Merged)
			stripContent(part.Standalone)
		}
		return output(struct {
			Partition *model.Partition `json:"partition" yaml:"partition"`
			Warnings  []stitch.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
		}{part, warnings})
	},
}

func stripContent(tables []model.FinalTable) {
	for i := range tables {
		tables[i].Content = ""
	}
}

// writeMarkdown prints every final table of part as a pipe table under a
// heading naming its source tables.
func writeMarkdown(w io.Writer, part *model.Partition) error {
	for _, ft := range part.Tables() {
		heading := fmt.Sprintf("## Tables %v", ft.Indices)
		if ft.Title != "" {
			heading += ": " + ft.Title
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", heading); err != nil {
			return err
		}
		if ft.Nested == nil {
			if _, err := fmt.Fprintln(w, "_no nested markup_"); err != nil {
				return err
			}
		} else if _, err := io.WriteString(w, ft.Nested.ToMarkdown()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	partitionCmd.Flags().BoolVar(&partitionContent, "content", false, "include the linear markup of each table")
	partitionCmd.Flags().BoolVar(&partitionMarkdown, "markdown", false, "print each table as a markdown pipe table")
	rootCmd.AddCommand(partitionCmd)
}
