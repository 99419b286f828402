package tables

import (
	"fmt"

	"github.com/tsawler/stitch/model"
)

// Merger joins merge candidates that are genuine vertical splits.
type Merger struct {
	cfg    Config
	linear *LinearCombiner
}

// NewMerger creates a merger with the given configuration.
func NewMerger(cfg Config) *Merger {
	return &Merger{cfg: cfg, linear: NewLinearCombiner(cfg)}
}

// Merge validates every candidate of det against doc and builds the merged
// tables. A candidate is merged only when no real paragraph sits between
// the two tables, their column counts match and the gap between them is
// at most MaxSeparation. A candidate whose earlier table ends the previous
// merged table extends it, so a table running over several pages becomes a
// single merged table. Pairs whose linear markup cannot be combined are
// left unmerged and reported as warnings.
func (m *Merger) Merge(doc *model.Document, det Detection) ([]model.FinalTable, []Warning) {
	log := m.cfg.logger()

	var merged []model.FinalTable
	var warnings []Warning

	for _, c := range det.Candidates {
		prev, ok := det.Span(c.Previous)
		if !ok {
			continue
		}
		next, ok := det.Span(c.Next)
		if !ok {
			continue
		}

		if reason := m.rejection(doc, c, prev, next); reason != "" {
			log.Debug("candidate rejected", "previous", prev.Index, "next", next.Index, "reason", reason)
			continue
		}

		nextContent := doc.Slice(next.Span)

		if n := len(merged); n > 0 && merged[n-1].Last() == prev.Index {
			last := &merged[n-1]
			content, err := m.linear.Combine(last.Content, nextContent)
			if err != nil {
				log.Warn("merge aborted", "previous", prev.Index, "next", next.Index, "error", err)
				warnings = append(warnings, Warning{
					Table:   next.Index,
					Message: fmt.Sprintf("not merged with table %d: %v", prev.Index, err),
				})
				continue
			}
			last.Indices = append(last.Indices, next.Index)
			last.Span = last.Span.Union(next.Span)
			last.Content = content
			log.Info("merged table extended", "tables", last.Indices)
			continue
		}

		content, err := m.linear.Combine(doc.Slice(prev.Span), nextContent)
		if err != nil {
			log.Warn("merge aborted", "previous", prev.Index, "next", next.Index, "error", err)
			warnings = append(warnings, Warning{
				Table:   prev.Index,
				Message: fmt.Sprintf("not merged with table %d: %v", next.Index, err),
			})
			continue
		}

		merged = append(merged, model.FinalTable{
			Indices:     []int{prev.Index, next.Index},
			Span:        prev.Span.Union(next.Span),
			Content:     content,
			ColumnCount: prev.ColumnCount,
			Title:       prev.Title,
		})
		log.Info("merged tables", "previous", prev.Index, "next", next.Index)
	}

	return merged, warnings
}

// rejection returns why a candidate is not a vertical split, or "".
func (m *Merger) rejection(doc *model.Document, c model.Candidate, prev, next model.IntegralSpan) string {
	switch {
	case next.Index != prev.Index+1:
		return "tables are not adjacent in the table list"
	case m.hasParagraph(doc.Paragraphs, c.Window()):
		return "content between tables"
	case prev.ColumnCount != next.ColumnCount:
		return "column counts differ"
	case charDistance(doc.Content, prev.Span.Max, next.Span.Min) > m.cfg.MaxSeparation:
		return "tables too far apart"
	}
	return ""
}

// hasParagraph reports whether a paragraph that is real content starts
// strictly inside window. Page headers, footers and page numbers do not
// count.
func (m *Merger) hasParagraph(paragraphs []model.Paragraph, window model.Span) bool {
	for _, p := range paragraphs {
		for _, f := range p.Fragments {
			if window.ContainsStrict(f.Offset) && !m.cfg.isNoise(p.Role) {
				return true
			}
		}
	}
	return false
}
