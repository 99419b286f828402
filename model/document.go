package model

// Document is one analysed file: the linear content buffer plus the tables,
// paragraphs and titles the analysis provider detected in it.
type Document struct {
	Filename   string
	Content    string
	Pages      []Page
	Tables     []RawTable
	Paragraphs []Paragraph
	Titles     []Title
}

// NewDocument creates a new empty document
func NewDocument(filename string) *Document {
	return &Document{
		Filename:   filename,
		Pages:      make([]Page, 0),
		Tables:     make([]RawTable, 0),
		Paragraphs: make([]Paragraph, 0),
		Titles:     make([]Title, 0),
	}
}

// AddTable appends a table and assigns its index.
func (d *Document) AddTable(t RawTable) {
	t.Index = len(d.Tables)
	d.Tables = append(d.Tables, t)
}

// AddParagraph appends a paragraph. Title paragraphs are also recorded as
// titles, preserving document order.
func (d *Document) AddParagraph(p Paragraph) {
	d.Paragraphs = append(d.Paragraphs, p)
	if p.Role == RoleTitle {
		d.Titles = append(d.Titles, TitleFromParagraph(p))
	}
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Table returns the table with the given index, or nil.
func (d *Document) Table(index int) *RawTable {
	if index < 0 || index >= len(d.Tables) {
		return nil
	}
	return &d.Tables[index]
}

// Slice returns the content covered by span.
func (d *Document) Slice(span Span) string {
	return span.Slice(d.Content)
}
