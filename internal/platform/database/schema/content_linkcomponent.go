package schema

// ContentLinkComponentTable represents the 'content.linkcomponent' table
type ContentLinkComponentTable struct {
	Table     string
	ID        string
	Title     string
	Link      string
	CreatedAt string
}

// ContentLinkComponent is the schema definition for content.linkcomponent
var ContentLinkComponent = ContentLinkComponentTable{
	Table:     "content.linkcomponent",
	ID:        "id",
	Title:     "title",
	Link:      "link",
	CreatedAt: "createdat",
}

func (t ContentLinkComponentTable) Columns() []string {
	return []string{t.ID, t.Title, t.Link, t.CreatedAt}
}
