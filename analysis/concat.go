package analysis

import (
	"github.com/tsawler/stitch/model"
)

// PageBreak is appended after every page but the last when per-page
// results are joined.
const PageBreak = "<!-- PageBreak -->\n\n"

// Concat joins results that were analysed one page at a time into a single
// document. Every offset of a later page is shifted by the length of the
// content before it, and each page's span is extended over its page break.
func Concat(filename string, pages ...*model.Document) *model.Document {
	doc := model.NewDocument(filename)

	for n, page := range pages {
		if page == nil {
			continue
		}
		shift := len(doc.Content)
		content := page.Content
		if n < len(pages)-1 {
			content += PageBreak
		}

		for i, p := range page.Pages {
			p.Fragments = shiftFragments(p.Fragments, shift)
			if i == 0 && len(p.Fragments) > 0 {
				p.Fragments[0].Length = len(content)
			}
			doc.Pages = append(doc.Pages, p)
		}
		for _, t := range page.Tables {
			t.Fragments = shiftFragments(t.Fragments, shift)
			t.Cells = append([]model.AnalyzedCell(nil), t.Cells...)
			for i := range t.Cells {
				t.Cells[i].Fragments = shiftFragments(t.Cells[i].Fragments, shift)
			}
			doc.AddTable(t)
		}
		for _, p := range page.Paragraphs {
			p.Fragments = shiftFragments(p.Fragments, shift)
			doc.AddParagraph(p)
		}

		doc.Content += content
	}
	return doc
}

func shiftFragments(in []model.Fragment, delta int) []model.Fragment {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.Fragment, len(in))
	for i, f := range in {
		out[i] = model.Fragment{Offset: f.Offset + delta, Length: f.Length}
	}
	return out
}
