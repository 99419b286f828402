package tables

import (
	"strings"
	"testing"

	"github.com/tsawler/stitch/model"
)

func TestDetect_ConsecutivePages(t *testing.T) {
	doc := newDocBuilder("a.pdf").
		table(1, 2, pipeA).
		text("\n\n").
		table(2, 2, pipeB).
		build()

	det := Detect(doc, DefaultConfig())

	if len(det.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(det.Spans))
	}
	if len(det.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(det.Candidates))
	}

	c := det.Candidates[0]
	if c.Previous != 0 || c.Next != 1 {
		t.Errorf("expected candidate 0->1, got %d->%d", c.Previous, c.Next)
	}
	if c.CheckStart != len(pipeA) {
		t.Errorf("CheckStart = %d, want %d", c.CheckStart, len(pipeA))
	}
	if c.CheckEnd != len(pipeA)+2 {
		t.Errorf("CheckEnd = %d, want %d", c.CheckEnd, len(pipeA)+2)
	}
	if c.Span != det.Spans[1].Span {
		t.Errorf("candidate span %v, want %v", c.Span, det.Spans[1].Span)
	}
}

func TestDetect_PageGaps(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
		want  int
	}{
		{"same page", []int{1, 1}, 0},
		{"next page", []int{1, 2}, 1},
		{"skipped page", []int{1, 3}, 0},
		{"three pages", []int{1, 2, 3}, 2},
		{"backwards", []int{2, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newDocBuilder("gaps.pdf")
			for _, p := range tt.pages {
				b.table(p, 2, pipeA).text("\n")
			}
			doc := b.build()

			det := Detect(doc, DefaultConfig())
			if len(det.Candidates) != tt.want {
				t.Errorf("expected %d candidates, got %d", tt.want, len(det.Candidates))
			}
		})
	}
}

func TestDetect_SkipsTablesWithoutSpans(t *testing.T) {
	doc := newDocBuilder("empty.pdf").
		table(1, 2, pipeA).
		emptyTable(2, 2).
		table(2, 2, pipeB).
		build()

	det := Detect(doc, DefaultConfig())

	if len(det.Skipped) != 1 || det.Skipped[0].Index != 1 {
		t.Fatalf("expected table 1 skipped, got %+v", det.Skipped)
	}
	if det.Skipped[0].Span != model.NoSpan {
		t.Errorf("skipped table span = %v, want NoSpan", det.Skipped[0].Span)
	}
	if got := det.Indices(); !equalInts(got, []int{0, 2}) {
		t.Errorf("valid indices = %v, want [0 2]", got)
	}
	if len(det.Candidates) != 1 || det.Candidates[0].Previous != 0 || det.Candidates[0].Next != 2 {
		t.Errorf("expected candidate 0->2, got %+v", det.Candidates)
	}
	if _, ok := det.Span(1); ok {
		t.Error("skipped table must not have an integral span")
	}
}

func TestDetect_AttributesTitles(t *testing.T) {
	doc := newDocBuilder("titles.pdf").
		paragraph(1, model.RoleTitle, "Revenue by region").
		text("\n\n").
		table(1, 2, pipeA).
		text("\n").
		table(1, 2, pipeB).
		build()

	det := Detect(doc, DefaultConfig())

	if det.Spans[0].Title != "Revenue by region" {
		t.Errorf("table 0 title = %q", det.Spans[0].Title)
	}
	if det.Spans[1].Title != "" {
		t.Errorf("title must be consumed once, table 1 got %q", det.Spans[1].Title)
	}
}

func TestDetect_TitleDistanceInCharacters(t *testing.T) {
	// 117 characters but 228 bytes between title and table.
	doc := newDocBuilder("umsatz.pdf").
		paragraph(1, model.RoleTitle, "Umsätze").
		text(strings.Repeat("ü", 110)).
		table(1, 2, pipeA).
		build()

	det := Detect(doc, DefaultConfig())
	if det.Spans[0].Title != "Umsätze" {
		t.Errorf("title within 120 characters not attributed, got %q", det.Spans[0].Title)
	}
}

func TestCharDistance(t *testing.T) {
	content := "aé€b"
	tests := []struct {
		from, to, want int
	}{
		{0, 1, 1},
		{0, 3, 2},
		{0, len(content), 4},
		{len(content), 0, -4},
		{0, 100, 100},
	}
	for _, tt := range tests {
		if got := charDistance(content, tt.from, tt.to); got != tt.want {
			t.Errorf("charDistance(%d, %d) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTitleCursor(t *testing.T) {
	titles := []model.Title{
		{Page: 1, Span: model.Span{Min: 10, Max: 20}, Text: "first"},
		{Page: 1, Span: model.Span{Min: 500, Max: 520}, Text: "second"},
		{Page: 3, Span: model.Span{Min: 900, Max: 910}, Text: "third"},
	}

	tc := NewTitleCursor(titles)

	if got := tc.Attribute(1, 200, 120); got != "" {
		t.Errorf("title 190 characters away attributed: %q", got)
	}
	if tc.Remaining() != 3 {
		t.Errorf("unmatched title consumed, remaining %d", tc.Remaining())
	}
	if got := tc.Attribute(1, 100, 120); got != "first" {
		t.Errorf("expected first, got %q", got)
	}
	if got := tc.Attribute(1, 400, 120); got != "" {
		t.Errorf("title after the table attributed: %q", got)
	}
	if got := tc.Attribute(2, 0, 120); got != "" {
		t.Errorf("later page title attributed: %q", got)
	}
	if got := tc.Attribute(3, 950, 120); got != "third" {
		t.Errorf("expected third, got %q", got)
	}
	if tc.Remaining() != 0 {
		t.Errorf("expected all titles passed, remaining %d", tc.Remaining())
	}
}

func TestTitleCursor_BoundaryDistance(t *testing.T) {
	titles := []model.Title{{Page: 1, Span: model.Span{Min: 0, Max: 5}, Text: "t"}}

	if got := NewTitleCursor(titles).Attribute(1, 120, 120); got != "t" {
		t.Errorf("title exactly at the proximity limit not attributed")
	}
	if got := NewTitleCursor(titles).Attribute(1, 121, 120); got != "" {
		t.Errorf("title past the proximity limit attributed")
	}
}
