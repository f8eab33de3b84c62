package schema

// ContentImageComponentTable represents the 'content.imagecomponent' table
type ContentImageComponentTable struct {
	Table     string
	ID        string
	Src       string
	AltText   string
	Link      string
	CreatedAt string
}

// ContentImageComponent is the schema definition for content.imagecomponent
var ContentImageComponent = ContentImageComponentTable{
	Table:     "content.imagecomponent",
	ID:        "id",
	Src:       "src",
	AltText:   "alttext",
	Link:      "link",
	CreatedAt: "createdat",
}

func (t ContentImageComponentTable) Columns() []string {
	return []string{t.ID, t.Src, t.AltText, t.Link, t.CreatedAt}
}
