package schema

// CompositionRegionTable represents the 'composition.region' table
type CompositionRegionTable struct {
	Table                   string
	ID                      string
	Name                    string
	Slug                    string
	ExtendRule              string
	Position                string
	AvailableComponentTypes string
	CreatedAt               string
	UpdatedAt               string
}

// CompositionRegion is the schema definition for composition.region
var CompositionRegion = CompositionRegionTable{
	Table:                   "composition.region",
	ID:                      "id",
	Name:                    "name",
	Slug:                    "slug",
	ExtendRule:              "extendrule",
	Position:                "position",
	AvailableComponentTypes: "availablecomponenttypes",
	CreatedAt:               "createdat",
	UpdatedAt:               "updatedat",
}

func (t CompositionRegionTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.ExtendRule, t.Position, t.AvailableComponentTypes, t.CreatedAt, t.UpdatedAt}
}
