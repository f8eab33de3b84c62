// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout_test

import (
	"github.com/taibuivan/mosaic/internal/layout"
)

// placed builds a visible placement of a "text" component.
func placed(regionID, componentID string, position int) layout.Placement {
	return layout.Placement{
		ID:            componentID,
		RegionID:      regionID,
		ComponentKind: "text",
		ComponentID:   componentID,
		Position:      position,
		Visible:       true,
	}
}
