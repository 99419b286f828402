// Package model provides the intermediate representation (IR) shared by every
// stage of table reconstruction.
//
// The types fall into three groups.
//
// # Analysis Input
//
// A [Document] is the output of a document analysis provider: a linear
// Content buffer plus the [RawTable], [Paragraph] and [Title] entities the
// provider detected. Every entity is anchored to the content buffer through
// one or more [Fragment] values and to pages through [BoundingRegion] values.
//
// # Spans
//
// A [Span] is a half-open character-offset interval into the content buffer.
// [UnionSpan] folds an entity's fragments into a single span; an entity
// without fragments yields [NoSpan], the (-1, -1) sentinel that excludes it
// from merging and from the final partition:
//
//	span := model.UnionSpan(table.Fragments)
//	if !span.Valid() {
//	    // skip
//	}
//
// # Tables
//
// [Table] is the row-oriented cell matrix used for nested markup. Cells carry
// RowSpan and ColSpan so that a table can be rebuilt into a dense grid:
//
//	t := model.NewTable(2, 3)
//	t.Rows[0][0] = model.Cell{Text: "Region", RowSpan: 2, ColSpan: 1}
//
// # Results
//
// [IntegralSpan], [Candidate] and [FinalTable] carry data between the
// reconstruction stages. A [Partition] is the durable output for one
// document: every valid table index appears in exactly one merged or
// standalone [FinalTable].
package model
