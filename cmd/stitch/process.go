package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tsawler/stitch"
)

var (
	processConcat   string
	processNoExport bool
)

var processCmd = &cobra.Command{
	Use:   "process <file|dir>...",
	Short: "Reconstruct, name and export the tables of analysis results",
	Long: `Process reads analysis results (JSON), merges tables split across page
breaks, types and names their columns, and exports them to the configured
destinations.

Examples:
  stitch process report.json
  stitch process ./results --no-export -o json
  stitch process p1.json p2.json p3.json --concat report`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := cfgManager.Get()

		docs, err := loadDocuments(args, processConcat)
		if err != nil {
			return err
		}

		p, err := buildPipeline(ctx, cfg, logger, !processNoExport)
		if err != nil {
			return err
		}

		res, runErr := stitch.ProcessAll(ctx, docs, stitch.BatchOptions{
			Workers:   p.workers,
			Processor: p.processor,
			Sink:      p.sink,
		})
		if err := p.Close(); err != nil {
			logger.Error("closing export", "error", err)
			if runErr == nil {
				runErr = err
			}
		}
		if res == nil {
			return runErr
		}

		files := make([]string, 0, len(res.Documents))
		for name := range res.Documents {
			files = append(files, name)
		}
		sort.Strings(files)

		summaries := make([]documentSummary, 0, len(files))
		for _, name := range files {
			summaries = append(summaries, summarize(name, res.Documents[name]))
		}
		if err := output(map[string]any{"run_id": res.RunID, "documents": summaries}); err != nil {
			return err
		}

		if runErr != nil {
			return runErr
		}
		if failed := res.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d of %d documents failed", len(failed), len(res.Documents))
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processConcat, "concat", "", "join the inputs as consecutive pages of one document with this name")
	processCmd.Flags().BoolVar(&processNoExport, "no-export", false, "reconstruct and name tables without exporting them")
	rootCmd.AddCommand(processCmd)
}
