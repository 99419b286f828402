package model

// Page represents a single analysed page
type Page struct {
	Number    int        `json:"pageNumber"` // 1-indexed page number
	Width     float64    `json:"width,omitempty"`
	Height    float64    `json:"height,omitempty"`
	Unit      string     `json:"unit,omitempty"`
	Fragments []Fragment `json:"spans,omitempty"` // Content covered by the page
}

// Span returns the part of the content buffer that belongs to the page.
func (p Page) Span() Span {
	return UnionSpan(p.Fragments)
}
