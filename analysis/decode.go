// Package analysis reads the layout analysis results that documents are
// reconstructed from.
//
// Results use the Document Intelligence analyzeResult layout: one content
// buffer plus pages, tables and paragraphs addressed by offset. Offsets in
// the JSON count Unicode code points; they are converted to byte offsets
// on decode so that they index Go strings directly.
package analysis

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tsawler/stitch/model"
)

// ErrInvalid is returned when an analysis result does not match the
// expected layout.
var ErrInvalid = errors.New("invalid analysis result")

//go:embed schema.json
var schemaJSON string

var resultSchema = jsonschema.MustCompileString("analyze_result.json", schemaJSON)

type envelope struct {
	AnalyzeResult json.RawMessage `json:"analyzeResult"`
}

type result struct {
	Content    string            `json:"content"`
	Pages      []model.Page      `json:"pages"`
	Tables     []table           `json:"tables"`
	Paragraphs []model.Paragraph `json:"paragraphs"`
}

type table struct {
	model.RawTable
	Caption *struct {
		Content string `json:"content"`
	} `json:"caption,omitempty"`
}

// Decode reads one analysis result. The result may be bare or wrapped in
// an {"analyzeResult": ...} envelope.
func Decode(r io.Reader, filename string) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, err)
	}
	if len(env.AnalyzeResult) > 0 {
		data = env.AnalyzeResult
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, err)
	}
	if err := resultSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, err)
	}

	var res result
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, err)
	}
	return res.document(filename), nil
}

// Load reads the analysis result stored at path. The document is named
// after the file without its .json extension.
func Load(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, strings.TrimSuffix(filepath.Base(path), ".json"))
}

// LoadDir reads every *.json analysis result in dir, sorted by name.
func LoadDir(dir string) ([]*model.Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	docs := make([]*model.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := Load(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *result) document(filename string) *model.Document {
	doc := model.NewDocument(filename)
	doc.Content = r.Content

	conv := newOffsetConverter(r.Content)

	for _, p := range r.Pages {
		p.Fragments = conv.fragments(p.Fragments)
		doc.Pages = append(doc.Pages, p)
	}
	for _, t := range r.Tables {
		rt := t.RawTable
		rt.Fragments = conv.fragments(rt.Fragments)
		for i := range rt.Cells {
			rt.Cells[i].Fragments = conv.fragments(rt.Cells[i].Fragments)
		}
		if t.Caption != nil {
			rt.Caption = t.Caption.Content
		}
		doc.AddTable(rt)
	}
	for _, p := range r.Paragraphs {
		p.Fragments = conv.fragments(p.Fragments)
		doc.AddParagraph(p)
	}
	return doc
}

// offsetConverter maps code point offsets to byte offsets.
type offsetConverter struct {
	content string
	// bytes[i] is the byte offset of code point i; nil for ASCII content.
	bytes []int
}

func newOffsetConverter(content string) *offsetConverter {
	c := &offsetConverter{content: content}
	if utf8.RuneCountInString(content) == len(content) {
		return c
	}
	c.bytes = make([]int, 0, len(content)+1)
	for i := range content {
		c.bytes = append(c.bytes, i)
	}
	c.bytes = append(c.bytes, len(content))
	return c
}

func (c *offsetConverter) byteOffset(cp int) int {
	if c.bytes == nil {
		return cp
	}
	if cp >= len(c.bytes) {
		return len(c.content) + cp - (len(c.bytes) - 1)
	}
	return c.bytes[cp]
}

func (c *offsetConverter) fragments(in []model.Fragment) []model.Fragment {
	if c.bytes == nil || len(in) == 0 {
		return in
	}
	out := make([]model.Fragment, len(in))
	for i, f := range in {
		start := c.byteOffset(f.Offset)
		end := c.byteOffset(f.Offset + f.Length)
		out[i] = model.Fragment{Offset: start, Length: end - start}
	}
	return out
}
