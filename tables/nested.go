package tables

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tsawler/stitch/htmldoc"
	"github.com/tsawler/stitch/model"
)

// continuationMarker in a caption marks a table that continues the previous
// one without repeating its header.
const continuationMarker = "continued"

// CombineNested finds every top-level table element in markup and merges
// them into one table. The first table is the base; see MergeNested for
// how later tables contribute rows.
func CombineNested(markup string) (*model.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing nested markup: %w", err)
	}

	var parsed []*model.Table
	doc.Find("table").
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.ParentsFiltered("table").Length() == 0
		}).
		Each(func(_ int, s *goquery.Selection) {
			parsed = append(parsed, htmldoc.TableFromNode(s.Get(0)))
		})

	if len(parsed) == 0 {
		return nil, ErrNoNestedMarkup
	}
	return MergeNested(parsed), nil
}

// MergeNested appends the rows of every later table to a copy of the first.
// Rows are taken verbatim, except that the leading row of a table that is
// not captioned as a continuation is dropped when it holds header cells: it
// is the header repeated after the page break.
func MergeNested(parts []*model.Table) *model.Table {
	if len(parts) == 0 {
		return nil
	}

	base := parts[0].Clone()
	for _, t := range parts[1:] {
		if t == nil {
			continue
		}
		continuation := strings.Contains(strings.ToLower(t.Caption), continuationMarker)
		skipFirst := !continuation && t.RowHasHeader(0)

		for i, row := range t.Rows {
			if i == 0 && skipFirst {
				continue
			}
			base.AppendRows(append([]model.Cell(nil), row...))
		}
	}
	return base
}
