// Package stitch reconstructs logical tables that a document analysis
// provider reported in pieces because they ran over a page break.
//
// Basic usage:
//
//	part, warnings, err := stitch.Open("report.json").Partition()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", stitch.FormatWarnings(warnings))
//	}
//
// With options:
//
//	frames, _, err := stitch.Open("report.json").
//	    MaxSeparation(2000).
//	    WithNamer(naming.NewHeader()).
//	    Frames(ctx)
//
// For whole directories, ProcessAll runs documents concurrently. The
// lower-level tables, columns and naming packages are also available.
package stitch

import (
	"github.com/tsawler/stitch/model"
)

// Open returns a Processor for the analysis result stored at path. The file
// is read by the first terminal operation.
//
// Example:
//
//	part, warnings, err := stitch.Open("report.json").Partition()
func Open(path string) *Processor {
	return &Processor{
		path:    path,
		options: defaultOptions(),
	}
}

// FromDocument returns a Processor for an already decoded document.
//
// Example:
//
//	doc, err := analysis.Load("report.json")
//	if err != nil {
//	    // handle error
//	}
//	frames, warnings, err := stitch.FromDocument(doc).Frames(ctx)
func FromDocument(doc *model.Document) *Processor {
	return &Processor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult wraps a terminal operation such as Partition() or Frames(),
// discards its warnings and panics if the error is non-nil.
//
// Example:
//
//	part := stitch.MustResult(stitch.Open("report.json").Partition())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
