package tables

import (
	"unicode/utf8"

	"github.com/tsawler/stitch/model"
)

// Detection is the result of scanning one document's tables.
type Detection struct {
	// Candidates are adjacent-page pairs that may be one split table
	Candidates []model.Candidate

	// Spans holds one entry per valid table, in index order
	Spans []model.IntegralSpan

	// Skipped holds the tables without fragments, recorded with NoSpan
	Skipped []model.IntegralSpan
}

// Span returns the integral span of a valid table.
func (d *Detection) Span(index int) (model.IntegralSpan, bool) {
	for _, s := range d.Spans {
		if s.Index == index {
			return s, true
		}
	}
	return model.IntegralSpan{}, false
}

// Indices returns the indices of every valid table.
func (d *Detection) Indices() []int {
	out := make([]int, len(d.Spans))
	for i, s := range d.Spans {
		out[i] = s.Index
	}
	return out
}

// TitleCursor walks an ordered title list once. Titles before the cursor
// have been consumed or can no longer match a later table.
type TitleCursor struct {
	titles []model.Title
	// content, when set, measures distances in characters instead of bytes.
	content string
	next   int
}

// NewTitleCursor creates a cursor over titles ordered by page.
func NewTitleCursor(titles []model.Title) *TitleCursor {
	return &TitleCursor{titles: titles}
}

// Remaining returns the number of titles not yet passed.
func (tc *TitleCursor) Remaining() int {
	return len(tc.titles) - tc.next
}

// Attribute returns the title of a table starting at offset on page, or ""
// if none qualifies. The first same-page title that starts at most
// proximity characters before the table wins and is consumed. Titles on a
// later page stop the scan.
func (tc *TitleCursor) Attribute(page, offset, proximity int) string {
	for i := tc.next; i < len(tc.titles); i++ {
		title := tc.titles[i]
		switch {
		case title.Page > page:
			return ""
		case title.Page < page:
			tc.next = i + 1
			continue
		}

		distance := charDistance(tc.content, title.Span.Min, offset)
		if title.Span.Valid() && distance >= 0 && distance <= proximity {
			tc.next = i + 1
			return title.Text
		}
	}
	return ""
}

// Detect computes the integral span of every table and finds merge
// candidates: pairs of valid tables on strictly consecutive pages. A table's
// identity is its position in tables. Tables
// without fragments are recorded in Skipped and never become part of a
// candidate. Titles are attributed in the same pass.
func Detect(doc *model.Document, cfg Config) Detection {
	log := cfg.logger()
	tables := doc.Tables
	cursor := NewTitleCursor(doc.Titles)
	cursor.content = doc.Content

	var det Detection
	prevIndex := -1
	prevPage := -1
	prevMax := 0

	for i := range tables {
		table := &tables[i]
		span := table.Span()
		if !span.Valid() {
			log.Warn("table has no spans", "table", i)
			det.Skipped = append(det.Skipped, model.IntegralSpan{
				Index: i,
				Span:  model.NoSpan,
			})
			continue
		}

		page := table.Page()
		log.Debug("table span",
			"table", i,
			"min_offset", span.Min,
			"max_offset", span.Max,
			"page", page,
		)

		if prevIndex >= 0 && page == prevPage+1 {
			det.Candidates = append(det.Candidates, model.Candidate{
				Previous:   prevIndex,
				Next:       i,
				CheckStart: prevMax,
				CheckEnd:   span.Min,
				Span:       span,
			})
		}

		det.Spans = append(det.Spans, model.IntegralSpan{
			Index:       i,
			Span:        span,
			ColumnCount: table.ColumnCount,
			Title:       cursor.Attribute(page, span.Min, cfg.TitleProximity),
		})

		prevIndex = i
		prevPage = page
		prevMax = span.Max
	}

	return det
}

// charDistance returns the number of characters from byte offset from to
// byte offset to in content, negative when to precedes from. Offsets outside
// content fall back to the byte difference.
func charDistance(content string, from, to int) int {
	lo, hi, sign := from, to, 1
	if hi < lo {
		lo, hi, sign = to, from, -1
	}
	if lo < 0 || hi > len(content) {
		return to - from
	}
	return sign * utf8.RuneCountInString(content[lo:hi])
}
