// Package tables reconstructs logical tables from the tables an analysis
// provider reports for one document.
//
// Providers emit one table object per page fragment, so a table that runs
// over a page break arrives as two or more tables. This package finds those
// splits and joins them again.
//
// # Stages
//
// Reconstruction runs in a fixed order, each stage consuming only the
// output of the previous one:
//
//  1. [Detect] computes each table's span and pairs tables on consecutive
//     pages into merge candidates. Titles are attributed in the same pass.
//  2. [Merger] accepts a candidate only when no real paragraph sits
//     between the two tables, their column counts match and they are at
//     most [Config].MaxSeparation characters apart. Accepted pairs that
//     share a table are chained.
//  3. [Organize] adds every remaining table as a standalone table and
//     checks that each valid table appears exactly once.
//  4. [Reconstruct] expands a final table's nested markup into a dense
//     grid, resolving row and column spans.
//
// [Pipeline] runs stages 1 to 3 and attaches nested markup to every final
// table:
//
//	p, err := tables.NewPipeline(tables.DefaultConfig())
//	part, warnings, err := p.Run(doc)
//	for _, ft := range part.Tables() {
//		grid := tables.Reconstruct(ft.Nested)
//		...
//	}
//
// # Linear markup
//
// Linear content uses pipe tables. A row's column count is the number of
// pieces when splitting on the border symbol, minus two. The alignment row
// ("| - | - |") is dropped from the second fragment when two fragments are
// combined.
package tables
