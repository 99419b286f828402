package tables

import (
	"fmt"

	"github.com/tsawler/stitch/model"
)

// Organize builds the final partition of a document's tables. Every valid
// table index not covered by a merged table becomes a standalone table. The
// result is checked: each valid index must appear exactly once across
// merged and standalone tables, and no other index may appear.
func Organize(doc *model.Document, det Detection, merged []model.FinalTable) (*model.Partition, error) {
	valid := make(map[int]bool, len(det.Spans))
	for _, s := range det.Spans {
		valid[s.Index] = true
	}

	covered := make(map[int]bool)
	for _, ft := range merged {
		if !ft.Contiguous() {
			return nil, fmt.Errorf("%w: merged table %v is not a contiguous run", ErrPartition, ft.Indices)
		}
		for _, idx := range ft.Indices {
			if !valid[idx] {
				return nil, fmt.Errorf("%w: merged table references invalid table %d", ErrPartition, idx)
			}
			if covered[idx] {
				return nil, fmt.Errorf("%w: table %d is in more than one merged table", ErrPartition, idx)
			}
			covered[idx] = true
		}
	}

	part := &model.Partition{
		Filename:   doc.Filename,
		Merged:     append([]model.FinalTable(nil), merged...),
		Standalone: make([]model.FinalTable, 0, len(det.Spans)-len(covered)),
	}

	for _, s := range det.Spans {
		if covered[s.Index] {
			continue
		}
		part.Standalone = append(part.Standalone, model.FinalTable{
			Indices:     []int{s.Index},
			Span:        s.Span,
			Content:     doc.Slice(s.Span),
			ColumnCount: s.ColumnCount,
			Title:       s.Title,
		})
	}

	if err := verifyPartition(part, det); err != nil {
		return nil, err
	}
	return part, nil
}

// verifyPartition checks completeness and disjointness of a partition.
func verifyPartition(part *model.Partition, det Detection) error {
	seen := make(map[int]int)
	for _, idx := range part.Indices() {
		seen[idx]++
	}
	for _, s := range det.Spans {
		switch seen[s.Index] {
		case 0:
			return fmt.Errorf("%w: table %d is missing", ErrPartition, s.Index)
		case 1:
		default:
			return fmt.Errorf("%w: table %d appears %d times", ErrPartition, s.Index, seen[s.Index])
		}
		delete(seen, s.Index)
	}
	for idx := range seen {
		return fmt.Errorf("%w: table %d is not a valid table", ErrPartition, idx)
	}
	return nil
}
