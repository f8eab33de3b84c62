// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"fmt"
)

// Provider contributes placements to regions.
type Provider interface {
	// ComponentsByRegion returns the provider's placements keyed by region id.
	ComponentsByRegion(context context.Context) (map[string][]Placement, error)
}

// # Stored Provider

// StoredProvider reads the visible placements of one layout or page from storage.
type StoredProvider struct {
	placements PlacementRepository
	kind       ProviderKind
	id         string
}

// NewStoredProvider binds a provider to its placements.
func NewStoredProvider(placements PlacementRepository, kind ProviderKind, id string) *StoredProvider {
	return &StoredProvider{placements: placements, kind: kind, id: id}
}

// ComponentsByRegion groups the provider's visible placements by region id.
func (provider *StoredProvider) ComponentsByRegion(context context.Context) (map[string][]Placement, error) {
	placements, err := provider.placements.ListPlacements(context, provider.kind, provider.id, PlacementFilter{VisibleOnly: true})
	if err != nil {
		return nil, fmt.Errorf("layout: list placements of %s %s: %w", provider.kind, provider.id, err)
	}

	byRegion := make(map[string][]Placement)
	for _, placement := range placements {
		byRegion[placement.RegionID] = append(byRegion[placement.RegionID], *placement)
	}

	return byRegion, nil
}

// LayoutProviders returns one stored provider per layout of the chain, outermost first.
func LayoutProviders(placements PlacementRepository, layout *Layout) []Provider {
	if layout == nil {
		return nil
	}

	chain := layout.ComponentProviders()
	providers := make([]Provider, 0, len(chain))
	for _, node := range chain {
		providers = append(providers, NewStoredProvider(placements, ProviderLayout, node.ID))
	}
	return providers
}

// # Static Provider

// StaticProvider is an in-memory provider, keyed by region id.
type StaticProvider map[string][]Placement

// Add appends placement under its region.
func (provider StaticProvider) Add(placement Placement) {
	provider[placement.RegionID] = append(provider[placement.RegionID], placement)
}

// ComponentsByRegion returns a copy of the map.
func (provider StaticProvider) ComponentsByRegion(context.Context) (map[string][]Placement, error) {
	byRegion := make(map[string][]Placement, len(provider))
	for regionID, placements := range provider {
		byRegion[regionID] = append([]Placement(nil), placements...)
	}
	return byRegion, nil
}
