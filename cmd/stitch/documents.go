package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/stitch"
	"github.com/tsawler/stitch/analysis"
	"github.com/tsawler/stitch/model"
)

// loadDocuments reads analysis results from files and directories. With a
// concat name, all results are treated as consecutive pages of one
// document.
func loadDocuments(paths []string, concat string) ([]*model.Document, error) {
	var docs []*model.Document
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			loaded, err := analysis.LoadDir(path)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
			docs = append(docs, loaded...)
			continue
		}
		doc, err := analysis.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		docs = append(docs, doc)
	}

	if concat != "" {
		return []*model.Document{analysis.Concat(concat, docs...)}, nil
	}
	return docs, nil
}

func isAnalysisFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// documentSummary is the CLI view of one processed document.
type documentSummary struct {
	File       string         `json:"file" yaml:"file"`
	Merged     [][]int        `json:"merged" yaml:"merged"`
	Standalone [][]int        `json:"standalone" yaml:"standalone"`
	Frames     []frameSummary `json:"frames,omitempty" yaml:"frames,omitempty"`
	Warnings   []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error      string         `json:"error,omitempty" yaml:"error,omitempty"`
	Duration   string         `json:"duration" yaml:"duration"`
}

type frameSummary struct {
	Name    string   `json:"name" yaml:"name"`
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Rows    int      `json:"rows" yaml:"rows"`
	Columns []string `json:"columns" yaml:"columns"`
}

func summarize(file string, dr *stitch.DocumentResult) documentSummary {
	s := documentSummary{
		File:       file,
		Merged:     [][]int{},
		Standalone: [][]int{},
		Duration:   dr.Duration.Round(time.Millisecond).String(),
	}
	if dr.Partition != nil {
		for _, ft := range dr.Partition.Merged {
			s.Merged = append(s.Merged, ft.Indices)
		}
		for _, ft := range dr.Partition.Standalone {
			s.Standalone = append(s.Standalone, ft.Indices)
		}
	}
	for _, f := range dr.Frames {
		cols := make([]string, len(f.Columns))
		for i, c := range f.Columns {
			cols[i] = fmt.Sprintf("%s (%s)", c.Name, c.Kind)
		}
		s.Frames = append(s.Frames, frameSummary{Name: f.Name, Title: f.Title, Rows: f.Len(), Columns: cols})
	}
	for _, w := range dr.Warnings {
		s.Warnings = append(s.Warnings, w.String())
	}
	if dr.Err != nil {
		s.Error = dr.Err.Error()
	}
	return s
}
