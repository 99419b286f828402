// Package columns turns a reconstructed grid into typed columns.
//
// Every column is typed independently. A column is numeric when enough of
// its values parse as numbers once thousands separators and parentheses
// are removed, temporal when enough of its values look like dates, and
// text otherwise. Values that do not fit a numeric or temporal column are
// kept as nulls so that every column of a [Frame] has the same length.
package columns
