package stitch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/stitch/columns"
	"github.com/tsawler/stitch/export"
	"github.com/tsawler/stitch/model"
)

// DefaultWorkers is the number of documents processed at once when
// BatchOptions.Workers is not set.
const DefaultWorkers = 4

// BatchOptions configures ProcessAll.
type BatchOptions struct {
	// Workers bounds the number of documents processed concurrently.
	Workers int

	// Processor supplies the configuration applied to every document. Its
	// own source is ignored. Nil uses the defaults.
	Processor *Processor

	// Sink receives the frames of every successful document. Optional.
	Sink export.Sink
}

// DocumentResult is the outcome for one document of a batch.
type DocumentResult struct {
	Partition *model.Partition `json:"partition,omitempty" yaml:"partition,omitempty"`
	Frames    []*columns.Frame `json:"-" yaml:"-"`
	Warnings  []Warning        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Err       error            `json:"-" yaml:"-"`
	Duration  time.Duration    `json:"duration" yaml:"duration"`
}

// BatchResult holds the results of ProcessAll keyed by document filename.
type BatchResult struct {
	RunID     string                     `json:"run_id" yaml:"run_id"`
	Documents map[string]*DocumentResult `json:"documents" yaml:"documents"`
}

// Failed returns the filenames of documents that failed.
func (r *BatchResult) Failed() []string {
	var out []string
	for name, d := range r.Documents {
		if d.Err != nil {
			out = append(out, name)
		}
	}
	return out
}

// ProcessAll runs the whole pipeline for every document concurrently. A
// failing document is recorded in its result and never stops the others.
// Documents sharing a filename after the first are reported as failed. The
// returned error is non-nil only when ctx is cancelled.
func ProcessAll(ctx context.Context, docs []*model.Document, opts BatchOptions) (*BatchResult, error) {
	base := opts.Processor
	if base == nil {
		base = &Processor{options: defaultOptions()}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	res := &BatchResult{
		RunID:     uuid.NewString(),
		Documents: make(map[string]*DocumentResult, len(docs)),
	}
	log := base.options.logger.With("run", res.RunID)
	log.Info("batch started", "documents", len(docs), "workers", workers)

	var g errgroup.Group
	g.SetLimit(workers)

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if _, dup := res.Documents[doc.Filename]; dup {
			log.Warn("duplicate document skipped", "file", doc.Filename)
			continue
		}
		dr := &DocumentResult{}
		res.Documents[doc.Filename] = dr

		proc := base.withDocument(doc)
		proc.options.logger = log
		g.Go(func() error {
			start := time.Now()
			defer func() { dr.Duration = time.Since(start) }()

			if err := ctx.Err(); err != nil {
				dr.Err = err
				return nil
			}
			dr.Err = processOne(ctx, proc, opts.Sink, dr)
			if dr.Err != nil {
				log.Error("document failed", "file", doc.Filename, "error", dr.Err)
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Info("batch finished", "documents", len(res.Documents), "failed", len(res.Failed()))
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("batch %s interrupted: %w", res.RunID, err)
	}
	return res, nil
}

func processOne(ctx context.Context, proc *Processor, sink export.Sink, dr *DocumentResult) error {
	part, warnings, err := proc.Partition()
	dr.Partition = part
	dr.Warnings = warnings
	if err != nil {
		return err
	}

	frames, warnings, err := proc.frames(ctx, part, warnings)
	dr.Frames = frames
	dr.Warnings = warnings
	if err != nil {
		return err
	}
	if sink == nil {
		return nil
	}
	return writeFrames(ctx, sink, part.Filename, frames)
}
