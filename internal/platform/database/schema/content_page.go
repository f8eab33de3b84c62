package schema

// ContentPageTable represents the 'content.page' table
type ContentPageTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	LayoutID    string
	Body        string
	IsPublished string
	CreatedAt   string
	UpdatedAt   string
}

// ContentPage is the schema definition for content.page
var ContentPage = ContentPageTable{
	Table:       "content.page",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	LayoutID:    "layoutid",
	Body:        "body",
	IsPublished: "ispublished",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t ContentPageTable) Columns() []string {
	return []string{t.ID, t.Title, t.Slug, t.LayoutID, t.Body, t.IsPublished, t.CreatedAt, t.UpdatedAt}
}
