package schema

// ContentTextComponentTable represents the 'content.textcomponent' table
type ContentTextComponentTable struct {
	Table     string
	ID        string
	Title     string
	Body      string
	CreatedAt string
}

// ContentTextComponent is the schema definition for content.textcomponent
var ContentTextComponent = ContentTextComponentTable{
	Table:     "content.textcomponent",
	ID:        "id",
	Title:     "title",
	Body:      "body",
	CreatedAt: "createdat",
}

func (t ContentTextComponentTable) Columns() []string {
	return []string{t.ID, t.Title, t.Body, t.CreatedAt}
}
