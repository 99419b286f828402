package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tsawler/stitch"
	"github.com/tsawler/stitch/internal/config"
	"github.com/tsawler/stitch/model"
)

// Writes of one file arrive as several events; processing waits this long
// after the last one.
const watchSettle = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Process analysis results as they appear in a directory",
	Long: `Watch processes every analysis result (JSON) written to a directory and
exports its tables. Changes to the config file are picked up without a
restart. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		w := &watcher{ctx: ctx}
		if err := w.reload(cfgManager.Get()); err != nil {
			return err
		}
		defer w.close()

		cfgManager.OnChange(func(cfg *config.Config) {
			if err := w.reload(cfg); err != nil {
				logger.Error("config reload failed, keeping previous pipeline", "error", err)
				return
			}
			logger.Info("config reloaded", "file", cfgManager.File())
		})
		if cfgManager.File() != "" {
			cfgManager.WatchConfig()
		}

		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer fw.Close()
		if err := fw.Add(args[0]); err != nil {
			return fmt.Errorf("watching %s: %w", args[0], err)
		}
		logger.Info("watching for analysis results", "dir", args[0])

		pending := make(map[string]*time.Timer)
		defer func() {
			for _, t := range pending {
				t.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil
			case err, ok := <-fw.Errors:
				if !ok {
					return nil
				}
				logger.Error("watch error", "error", err)
			case ev, ok := <-fw.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
					continue
				}
				if !isAnalysisFile(ev.Name) {
					continue
				}
				path := ev.Name
				if t, ok := pending[path]; ok {
					t.Reset(watchSettle)
					continue
				}
				pending[path] = time.AfterFunc(watchSettle, func() { w.process(path) })
			}
		}
	},
}

// watcher holds the pipeline of the current configuration.
type watcher struct {
	ctx context.Context

	mu sync.Mutex
	p  *pipeline
}

func (w *watcher) reload(cfg *config.Config) error {
	p, err := buildPipeline(w.ctx, cfg, logger, true)
	if err != nil {
		return err
	}

	w.mu.Lock()
	old := w.p
	w.p = p
	w.mu.Unlock()

	if old != nil {
		return old.Close()
	}
	return nil
}

func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.p != nil {
		if err := w.p.Close(); err != nil {
			logger.Error("closing export", "error", err)
		}
		w.p = nil
	}
}

// process handles one file. Runs serialise so a reload never closes sinks
// in use.
func (w *watcher) process(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.p == nil || w.ctx.Err() != nil {
		return
	}

	docs, err := loadDocuments([]string{path}, "")
	if err != nil {
		logger.Error("skipping file", "file", path, "error", err)
		return
	}

	res, err := stitch.ProcessAll(w.ctx, docs, stitch.BatchOptions{
		Workers:   1,
		Processor: w.p.processor,
		Sink:      w.p.sink,
	})
	if err != nil {
		logger.Error("processing interrupted", "file", path, "error", err)
		return
	}
	report(res, docs)
}

func report(res *stitch.BatchResult, docs []*model.Document) {
	for _, doc := range docs {
		dr, ok := res.Documents[doc.Filename]
		if !ok {
			continue
		}
		if err := output(summarize(doc.Filename, dr)); err != nil {
			logger.Error("writing output", "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
