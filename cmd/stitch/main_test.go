package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/stitch"
	"github.com/tsawler/stitch/internal/config"
	"github.com/tsawler/stitch/model"
	"github.com/tsawler/stitch/naming"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
	}{
		{"info", "text", false},
		{"DEBUG", "json", false},
		{"warn", "", false},
		{"loud", "text", true},
		{"info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			_, err := newLogger(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("newLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOutputTo(t *testing.T) {
	data := map[string]int{"tables": 2}

	var buf bytes.Buffer
	if err := outputTo(&buf, OutputFormatJSON, data); err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil || got["tables"] != 2 {
		t.Errorf("json output = %q", buf.String())
	}

	buf.Reset()
	if err := outputTo(&buf, OutputFormatYAML, data); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "tables: 2" {
		t.Errorf("yaml output = %q", buf.String())
	}

	if err := outputTo(&buf, "xml", data); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestBuildNamer(t *testing.T) {
	ctx := context.Background()

	n, closer, err := buildNamer(ctx, config.NamingCfg{Provider: "none"}, nil)
	if err != nil || n != nil || closer != nil {
		t.Errorf("none: %v %v", n, err)
	}

	n, _, err = buildNamer(ctx, config.NamingCfg{Provider: "header"}, nil)
	if _, ok := n.(*naming.Header); !ok || err != nil {
		t.Errorf("header: %T %v", n, err)
	}

	t.Setenv("STITCH_TEST_MISSING_KEY", "")
	if _, _, err := buildNamer(ctx, config.NamingCfg{Provider: "openai", APIKey: "${STITCH_TEST_MISSING_KEY}"}, nil); err == nil {
		t.Error("expected error for openai without key")
	}

	if _, _, err := buildNamer(ctx, config.NamingCfg{Provider: "oracle"}, nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestBuildSink(t *testing.T) {
	ctx := context.Background()

	sink, err := buildSink(ctx, config.ExportCfg{Formats: []string{"csv", "xlsx"}, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("buildSink failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	if _, err := buildSink(ctx, config.ExportCfg{Formats: []string{"postgres"}}); err == nil {
		t.Error("expected error for postgres without dsn")
	}
	if _, err := buildSink(ctx, config.ExportCfg{Formats: []string{"s3"}}); err == nil {
		t.Error("expected error for s3 without bucket")
	}
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"p1.json", "p2.json"} {
		data := `{"content": "page ` + name + `", "pages": [{"pageNumber": 1}]}`
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := loadDocuments([]string{dir}, "")
	if err != nil {
		t.Fatalf("loadDocuments failed: %v", err)
	}
	if len(docs) != 2 || docs[0].Filename != "p1" || docs[1].Filename != "p2" {
		t.Errorf("docs = %+v", docs)
	}

	docs, err = loadDocuments([]string{filepath.Join(dir, "p1.json"), filepath.Join(dir, "p2.json")}, "book")
	if err != nil {
		t.Fatalf("loadDocuments failed: %v", err)
	}
	if len(docs) != 1 || docs[0].Filename != "book" {
		t.Fatalf("concat docs = %+v", docs)
	}
	if !strings.Contains(docs[0].Content, "<!-- PageBreak -->") {
		t.Errorf("content = %q", docs[0].Content)
	}

	if _, err := loadDocuments([]string{filepath.Join(dir, "missing.json")}, ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSummarize(t *testing.T) {
	dr := &stitch.DocumentResult{
		Partition: &model.Partition{
			Merged:     []model.FinalTable{{Indices: []int{0, 1}}},
			Standalone: []model.FinalTable{{Indices: []int{2}}},
		},
		Warnings: []stitch.Warning{{Document: "a", Table: 2, Message: "naming fell back"}},
		Err:      errors.New("disk full"),
	}

	s := summarize("a", dr)
	if len(s.Merged) != 1 || len(s.Standalone) != 1 || s.Standalone[0][0] != 2 {
		t.Errorf("summary tables = %+v", s)
	}
	if len(s.Warnings) != 1 || s.Warnings[0] != "a: table 2: naming fell back" {
		t.Errorf("warnings = %v", s.Warnings)
	}
	if s.Error != "disk full" {
		t.Errorf("error = %q", s.Error)
	}
}

func TestWriteMarkdown(t *testing.T) {
	nested := model.NewTable(2, 2)
	nested.Rows[0][0].Text = "Item"
	nested.Rows[0][1].Text = "Qty"
	nested.Rows[1][0].Text = "bolt"
	nested.Rows[1][1].Text = "4"

	part := &model.Partition{
		Merged:     []model.FinalTable{{Indices: []int{0, 1}, Title: "Inventory", Nested: nested}},
		Standalone: []model.FinalTable{{Indices: []int{2}}},
	}

	var buf bytes.Buffer
	if err := writeMarkdown(&buf, part); err != nil {
		t.Fatalf("writeMarkdown failed: %v", err)
	}
	want := "## Tables [0 1]: Inventory\n\n" +
		"| Item | Qty |\n| - | - |\n| bolt | 4 |\n\n" +
		"## Tables [2]\n\n_no nested markup_\n\n"
	if got := buf.String(); got != want {
		t.Errorf("writeMarkdown() = %q, want %q", got, want)
	}
}
