package stitch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsawler/stitch/analysis"
	"github.com/tsawler/stitch/columns"
	"github.com/tsawler/stitch/export"
	"github.com/tsawler/stitch/htmldoc"
	"github.com/tsawler/stitch/model"
	"github.com/tsawler/stitch/naming"
	"github.com/tsawler/stitch/tables"
)

// Processor provides a fluent interface for reconstructing the tables of
// one document. Each configuration method returns a new Processor, so a
// configured Processor can be shared and reused.
type Processor struct {
	// Source
	path string
	doc  *model.Document

	// Configuration
	options Options

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Processor with a deep copy of options.
func (p *Processor) clone() *Processor {
	return &Processor{
		path:    p.path,
		doc:     p.doc,
		options: p.options.clone(),
		err:     p.err,
	}
}

// withDocument returns a copy of p that processes doc.
func (p *Processor) withDocument(doc *model.Document) *Processor {
	newP := p.clone()
	newP.path = ""
	newP.doc = doc
	return newP
}

// document returns the document to process, loading it on first use.
func (p *Processor) document() (*model.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	if p.path == "" {
		return nil, errors.New("no document specified")
	}
	doc, err := analysis.Load(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	p.doc = doc
	return doc, nil
}

// ============================================================================
// Configuration Methods (return new Processor instance)
// ============================================================================

// TitleProximity sets the maximum number of characters between a title and
// the table it names.
func (p *Processor) TitleProximity(chars int) *Processor {
	newP := p.clone()
	newP.options.tables.TitleProximity = chars
	return newP
}

// MaxSeparation sets the maximum gap in characters between two pieces of a
// table for them to be merged.
//
// Example:
//
//	part, _, err := stitch.Open("report.json").MaxSeparation(2000).Partition()
func (p *Processor) MaxSeparation(chars int) *Processor {
	newP := p.clone()
	newP.options.tables.MaxSeparation = chars
	return newP
}

// Thresholds sets the share of values that must parse for a column to be
// typed numeric or temporal. Both must lie in [0, 1].
func (p *Processor) Thresholds(numeric, temporal float64) *Processor {
	newP := p.clone()
	if numeric < 0 || numeric > 1 || temporal < 0 || temporal > 1 {
		newP.err = fmt.Errorf("thresholds must be between 0 and 1, got %v and %v", numeric, temporal)
		return newP
	}
	newP.options.typer = columns.Typer{NumericThreshold: numeric, TemporalThreshold: temporal}
	return newP
}

// WithNamer sets the collaborator that names tables and columns. Without
// one, tables get fallback names and columns Column_1 .. Column_N.
func (p *Processor) WithNamer(n naming.Namer) *Processor {
	newP := p.clone()
	newP.options.namer = n
	return newP
}

// WithLogger sets the logger. Nil restores slog.Default().
func (p *Processor) WithLogger(logger *slog.Logger) *Processor {
	newP := p.clone()
	if logger == nil {
		logger = slog.Default()
	}
	newP.options.logger = logger
	return newP
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Partition detects, merges and organises the document's tables. Every
// valid table appears exactly once, either in a merged table or as a
// standalone table.
func (p *Processor) Partition() (*model.Partition, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	doc, err := p.document()
	if err != nil {
		return nil, nil, err
	}

	pipeline, err := tables.NewPipeline(p.options.tablesConfig())
	if err != nil {
		return nil, nil, err
	}
	part, tw, err := pipeline.Run(doc)
	if err != nil {
		return nil, fromTables(doc.Filename, tw), fmt.Errorf("reconstructing %s: %w", doc.Filename, err)
	}
	return part, fromTables(doc.Filename, tw), nil
}

// Frames reconstructs the document's tables and flattens each into a typed
// frame. Merged tables come first, named merged_<i> unless the namer
// provides a name, then standalone tables named standalone_<i>. Tables
// without nested markup or data rows are skipped with a warning.
func (p *Processor) Frames(ctx context.Context) ([]*columns.Frame, []Warning, error) {
	part, warnings, err := p.Partition()
	if err != nil {
		return nil, warnings, err
	}
	return p.frames(ctx, part, warnings)
}

func (p *Processor) frames(ctx context.Context, part *model.Partition, warnings []Warning) ([]*columns.Frame, []Warning, error) {
	var frames []*columns.Frame
	add := func(ft *model.FinalTable, fallback string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, fw, err := p.frame(ctx, part.Filename, ft, fallback)
		warnings = append(warnings, fw...)
		if err != nil {
			return err
		}
		if frame != nil {
			frames = append(frames, frame)
		}
		return nil
	}

	for i := range part.Merged {
		if err := add(&part.Merged[i], fmt.Sprintf("merged_%d", i)); err != nil {
			return frames, warnings, err
		}
	}
	for i := range part.Standalone {
		if err := add(&part.Standalone[i], fmt.Sprintf("standalone_%d", i)); err != nil {
			return frames, warnings, err
		}
	}
	return frames, warnings, nil
}

// frame builds the frame of one final table. A nil frame with no error
// means the table was skipped.
func (p *Processor) frame(ctx context.Context, document string, ft *model.FinalTable, fallback string) (*columns.Frame, []Warning, error) {
	warn := func(msg string) []Warning {
		return []Warning{{Document: document, Table: ft.Indices[0], Message: msg}}
	}
	if ft.Nested == nil {
		return nil, warn(fallback + ": no nested markup, table skipped"), nil
	}

	grid := tables.Reconstruct(ft.Nested)
	records := grid.Records()
	if len(records) == 0 {
		return nil, warn(fallback + ": no data rows, table skipped"), nil
	}

	names := naming.Resolve(ctx, p.options.namer, naming.Request{
		Fallback: fallback,
		Title:    ft.Title,
		Content:  htmldoc.Render(ft.Nested),
		Columns:  grid.Width,
	})
	var warnings []Warning
	for _, reason := range names.Reasons {
		p.options.logger.Warn("naming fell back", "file", document, "table", fallback, "reason", reason)
		warnings = append(warnings, warn(fallback+": "+reason)...)
	}

	frame, err := columns.Flatten(names.Table, records, names.Columns, p.options.typer)
	if err != nil {
		return nil, warnings, err
	}
	frame.Title = ft.Title
	return frame, warnings, nil
}

// Export writes every frame of the document to sink. The sink is not
// closed.
//
// Example:
//
//	sink := export.NewCSV("output")
//	defer sink.Close()
//	warnings, err := stitch.Open("report.json").Export(ctx, sink)
func (p *Processor) Export(ctx context.Context, sink export.Sink) ([]Warning, error) {
	part, warnings, err := p.Partition()
	if err != nil {
		return warnings, err
	}
	frames, warnings, err := p.frames(ctx, part, warnings)
	if err != nil {
		return warnings, err
	}
	return warnings, writeFrames(ctx, sink, part.Filename, frames)
}

func writeFrames(ctx context.Context, sink export.Sink, document string, frames []*columns.Frame) error {
	for _, f := range frames {
		if err := sink.Write(ctx, document, f); err != nil {
			return fmt.Errorf("exporting %s/%s: %w", document, f.Name, err)
		}
	}
	return nil
}
