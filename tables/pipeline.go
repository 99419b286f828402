package tables

import (
	"errors"
	"fmt"

	"github.com/tsawler/stitch/model"
)

// Pipeline runs table reconstruction for one document. The stages run in
// order, each consuming only the previous stage's output:
// Detect, Merge, Organize, then nested markup for every final table.
type Pipeline struct {
	cfg    Config
	linear *LinearCombiner
}

// NewPipeline creates a pipeline. The configuration is validated.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Pipeline{
		cfg:    cfg,
		linear: NewLinearCombiner(cfg),
	}, nil
}

// Run reconstructs the tables of doc. Problems with single tables are
// returned as warnings. If the merge results cannot be organised into a
// consistent partition, every valid table is returned standalone.
func (p *Pipeline) Run(doc *model.Document) (*model.Partition, []Warning, error) {
	if doc == nil {
		return nil, nil, errors.New("nil document")
	}
	log := p.cfg.logger().With("file", doc.Filename)
	cfg := p.cfg
	cfg.Logger = log

	det := Detect(doc, cfg)
	var warnings []Warning
	for _, s := range det.Skipped {
		warnings = append(warnings, Warning{Table: s.Index, Message: "table has no spans"})
	}

	merged, mw := NewMerger(cfg).Merge(doc, det)
	warnings = append(warnings, mw...)

	part, err := Organize(doc, det, merged)
	if err != nil {
		log.Error("partition rejected, keeping all tables standalone", "error", err)
		warnings = append(warnings, Warning{Table: -1, Message: err.Error()})
		part, err = Organize(doc, det, nil)
		if err != nil {
			return nil, warnings, err
		}
	}

	for _, ft := range part.Tables() {
		if err := p.attachNested(doc, ft); err != nil {
			log.Warn("skipping nested markup", "tables", ft.Indices, "error", err)
			warnings = append(warnings, Warning{Table: ft.Indices[0], Message: err.Error()})
		}
	}

	log.Info("tables organized",
		"pages", doc.PageCount(),
		"tables", len(doc.Tables),
		"merged", len(part.Merged),
		"standalone", len(part.Standalone),
		"skipped", len(det.Skipped),
	)
	return part, warnings, nil
}

// attachNested sets the nested markup of a final table. Markup tables in
// the linear content are preferred; otherwise the provider's cell lists are
// merged; otherwise the linear markup is parsed as a pipe table.
func (p *Pipeline) attachNested(doc *model.Document, ft *model.FinalTable) error {
	nested, err := CombineNested(ft.Content)
	if err == nil {
		ft.Nested = nested
		return nil
	}
	if !errors.Is(err, ErrNoNestedMarkup) {
		return err
	}

	var parts []*model.Table
	for _, idx := range ft.Indices {
		if rt := doc.Table(idx); rt != nil {
			if t := rt.Nested(); t != nil {
				parts = append(parts, t)
			}
		}
	}
	if len(parts) == len(ft.Indices) {
		ft.Nested = MergeNested(parts)
		return nil
	}

	if t := p.linear.ParseLinear(ft.Content); t.RowCount() > 0 {
		ft.Nested = t
		return nil
	}
	return fmt.Errorf("%w for tables %v", ErrNoNestedMarkup, ft.Indices)
}
