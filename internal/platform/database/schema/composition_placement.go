package schema

// CompositionPlacementTable represents the 'composition.placement' table
type CompositionPlacementTable struct {
	Table         string
	ID            string
	ProviderKind  string
	ProviderID    string
	RegionID      string
	ComponentKind string
	ComponentID   string
	Position      string
	IsVisible     string
	CreatedAt     string
}

// CompositionPlacement is the schema definition for composition.placement
var CompositionPlacement = CompositionPlacementTable{
	Table:         "composition.placement",
	ID:            "id",
	ProviderKind:  "providerkind",
	ProviderID:    "providerid",
	RegionID:      "regionid",
	ComponentKind: "componentkind",
	ComponentID:   "componentid",
	Position:      "position",
	IsVisible:     "isvisible",
	CreatedAt:     "createdat",
}

func (t CompositionPlacementTable) Columns() []string {
	return []string{t.ID, t.ProviderKind, t.ProviderID, t.RegionID, t.ComponentKind, t.ComponentID, t.Position, t.IsVisible, t.CreatedAt}
}
