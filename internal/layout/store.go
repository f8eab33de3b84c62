// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import "context"

// RegionRepository persists regions. Regions are addressed by slug.
type RegionRepository interface {
	ListRegions(context context.Context) ([]*Region, error)
	GetRegionBySlug(context context.Context, slug string) (*Region, error)
	CreateRegion(context context.Context, region *Region) error
	UpdateRegion(context context.Context, region *Region) error
	DeleteRegion(context context.Context, slug string) error
}

// LayoutRepository persists layouts. Reads return the layout with its Parent chain populated.
type LayoutRepository interface {
	GetLayoutBySlug(context context.Context, slug string) (*Layout, error)
	GetLayoutByID(context context.Context, id string) (*Layout, error)
	CreateLayout(context context.Context, layout *Layout) error
	UpdateLayout(context context.Context, layout *Layout) error
}

// PlacementFilter narrows placement listings.
type PlacementFilter struct {
	// VisibleOnly hides placements switched off by editors.
	VisibleOnly bool
}

// PlacementRepository persists placements of all provider kinds.
type PlacementRepository interface {
	ListPlacements(context context.Context, kind ProviderKind, providerID string, filter PlacementFilter) ([]*Placement, error)
	CreatePlacement(context context.Context, placement *Placement) error
	DeletePlacement(context context.Context, id string) error
}

// Repository groups every storage concern of the package.
type Repository interface {
	RegionRepository
	LayoutRepository
	PlacementRepository
}
