package schema

// CompositionLayoutTable represents the 'composition.layout' table
type CompositionLayoutTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	ParentID  string
	CreatedAt string
	UpdatedAt string
}

// CompositionLayout is the schema definition for composition.layout
var CompositionLayout = CompositionLayoutTable{
	Table:     "composition.layout",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	ParentID:  "parentid",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CompositionLayoutTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.ParentID, t.CreatedAt, t.UpdatedAt}
}
