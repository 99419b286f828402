package model

import "fmt"

// Fragment is one contiguous run of an entity's markup in the content buffer.
type Fragment struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// End returns the exclusive end offset of the fragment.
func (f Fragment) End() int {
	return f.Offset + f.Length
}

// Span is a half-open [Min, Max) character-offset interval.
type Span struct {
	Min int `json:"min_offset" yaml:"min_offset"`
	Max int `json:"max_offset" yaml:"max_offset"`
}

// NoSpan is the sentinel for an entity that has no fragments.
var NoSpan = Span{Min: -1, Max: -1}

// UnionSpan returns the smallest span covering every fragment.
// An empty fragment list yields NoSpan.
func UnionSpan(fragments []Fragment) Span {
	if len(fragments) == 0 {
		return NoSpan
	}

	span := Span{Min: fragments[0].Offset, Max: fragments[0].End()}
	for _, f := range fragments[1:] {
		if f.Offset < span.Min {
			span.Min = f.Offset
		}
		if f.End() > span.Max {
			span.Max = f.End()
		}
	}
	return span
}

// Valid reports whether the span is a real interval rather than the sentinel.
func (s Span) Valid() bool {
	return s.Min > -1 && s.Max > -1 && s.Min <= s.Max
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	if !s.Valid() {
		return 0
	}
	return s.Max - s.Min
}

// ContainsStrict reports whether offset lies strictly between Min and Max.
func (s Span) ContainsStrict(offset int) bool {
	return offset > s.Min && offset < s.Max
}

// Union returns the span covering both s and other. Invalid spans are ignored.
func (s Span) Union(other Span) Span {
	switch {
	case !s.Valid():
		return other
	case !other.Valid():
		return s
	}
	out := s
	if other.Min < out.Min {
		out.Min = other.Min
	}
	if other.Max > out.Max {
		out.Max = other.Max
	}
	return out
}

// Slice returns the part of content covered by the span, clamped to the
// content bounds. Invalid spans yield an empty string.
func (s Span) Slice(content string) string {
	if !s.Valid() {
		return ""
	}
	lo, hi := s.Min, s.Max
	if lo > len(content) {
		lo = len(content)
	}
	if hi > len(content) {
		hi = len(content)
	}
	return content[lo:hi]
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Min, s.Max)
}
