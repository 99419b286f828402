package model

import "sort"

// IntegralSpan is the cached offset range and metadata of one valid table.
type IntegralSpan struct {
	Index       int    `json:"index" yaml:"index"`
	Span        Span   `json:"span" yaml:"span"`
	ColumnCount int    `json:"column_count" yaml:"column_count"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Candidate marks a table and its successor on the next page as a possible
// single table split by a page break.
type Candidate struct {
	// Previous and Next are the indices of the earlier and later table.
	Previous int `json:"previous" yaml:"previous"`
	Next     int `json:"next" yaml:"next"`

	// CheckStart and CheckEnd bound the content strictly between the two
	// tables. Any real paragraph inside disqualifies the merge.
	CheckStart int `json:"check_start" yaml:"check_start"`
	CheckEnd   int `json:"check_end" yaml:"check_end"`

	// Span is the later table's own span.
	Span Span `json:"span" yaml:"span"`
}

// Window returns the span between the two tables.
func (c Candidate) Window() Span {
	return Span{Min: c.CheckStart, Max: c.CheckEnd}
}

// FinalTable is one logical table after reconstruction. A table built from
// several raw tables is a merged table; one built from a single raw table
// is a standalone table.
type FinalTable struct {
	Indices     []int  `json:"indices" yaml:"indices"`
	Span        Span   `json:"span" yaml:"span"`
	Content     string `json:"content" yaml:"content"`
	Nested      *Table `json:"-" yaml:"-"`
	ColumnCount int    `json:"column_count" yaml:"column_count"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
}

// IsMerged reports whether the table was built from more than one raw table.
func (ft *FinalTable) IsMerged() bool {
	return len(ft.Indices) > 1
}

// Last returns the index of the last contributing raw table, or -1.
func (ft *FinalTable) Last() int {
	if len(ft.Indices) == 0 {
		return -1
	}
	return ft.Indices[len(ft.Indices)-1]
}

// Contiguous reports whether the indices form a strictly increasing run
// without gaps.
func (ft *FinalTable) Contiguous() bool {
	for i := 1; i < len(ft.Indices); i++ {
		if ft.Indices[i] != ft.Indices[i-1]+1 {
			return false
		}
	}
	return len(ft.Indices) > 0
}

// Partition is the final classification of one document's tables.
type Partition struct {
	Filename   string       `json:"filename" yaml:"filename"`
	Merged     []FinalTable `json:"merged" yaml:"merged"`
	Standalone []FinalTable `json:"standalone" yaml:"standalone"`
}

// Indices returns every raw table index covered by the partition, sorted.
func (p *Partition) Indices() []int {
	var out []int
	for _, ft := range p.Merged {
		out = append(out, ft.Indices...)
	}
	for _, ft := range p.Standalone {
		out = append(out, ft.Indices...)
	}
	sort.Ints(out)
	return out
}

// Tables returns merged tables followed by standalone tables.
func (p *Partition) Tables() []*FinalTable {
	out := make([]*FinalTable, 0, len(p.Merged)+len(p.Standalone))
	for i := range p.Merged {
		out = append(out, &p.Merged[i])
	}
	for i := range p.Standalone {
		out = append(out, &p.Standalone[i])
	}
	return out
}
