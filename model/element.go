package model

// Role is the layout role a provider assigns to a paragraph.
type Role string

const (
	RoleNone           Role = ""
	RoleTitle          Role = "title"
	RoleSectionHeading Role = "sectionHeading"
	RolePageHeader     Role = "pageHeader"
	RolePageFooter     Role = "pageFooter"
	RolePageNumber     Role = "pageNumber"
	RoleFootnote       Role = "footnote"
)

// Roles lists every paragraph role a provider can assign.
var Roles = []Role{
	RoleTitle,
	RoleSectionHeading,
	RolePageHeader,
	RolePageFooter,
	RolePageNumber,
	RoleFootnote,
}

// IsLayoutNoise reports whether the role marks page header, footer or
// page number text. Such paragraphs are repeated on every page and are not
// real content.
func (r Role) IsLayoutNoise() bool {
	switch r {
	case RolePageHeader, RolePageFooter, RolePageNumber:
		return true
	}
	return false
}

// LayoutNoiseRoles returns the roles for which IsLayoutNoise is true.
func LayoutNoiseRoles() []Role {
	var out []Role
	for _, r := range Roles {
		if r.IsLayoutNoise() {
			out = append(out, r)
		}
	}
	return out
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// BoundingRegion places an entity on a page.
type BoundingRegion struct {
	PageNumber int       `json:"pageNumber"`
	Polygon    []float64 `json:"polygon,omitempty"`
}

// Paragraph is a block of text detected by the analysis provider.
type Paragraph struct {
	Text      string           `json:"content"`
	Role      Role             `json:"role,omitempty"`
	Fragments []Fragment       `json:"spans"`
	Regions   []BoundingRegion `json:"boundingRegions,omitempty"`
}

// Span returns the union span of the paragraph's fragments.
func (p Paragraph) Span() Span {
	return UnionSpan(p.Fragments)
}

// Page returns the first page the paragraph appears on, or 0 if unknown.
func (p Paragraph) Page() int {
	if len(p.Regions) == 0 {
		return 0
	}
	return p.Regions[0].PageNumber
}

// Title is a paragraph with the title role, reduced to what table title
// attribution needs.
type Title struct {
	Page int    `json:"page"`
	Span Span   `json:"span"`
	Text string `json:"text"`
}

// TitleFromParagraph converts a title paragraph. The title offset is the
// paragraph's first fragment, matching how providers anchor headings.
func TitleFromParagraph(p Paragraph) Title {
	span := NoSpan
	if len(p.Fragments) > 0 {
		span = Span{Min: p.Fragments[0].Offset, Max: p.Fragments[0].End()}
	}
	return Title{Page: p.Page(), Span: span, Text: p.Text}
}
