// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"log/slog"
	"sort"

	"github.com/taibuivan/mosaic/internal/hint"
	"github.com/taibuivan/mosaic/pkg/pointer"
)

// # Composition Result

// RegionComponents is the resolved content of one region.
type RegionComponents struct {
	Region     Region      `json:"region"`
	Components []Component `json:"-"`
}

// TemplateHints delegates to the region.
func (components RegionComponents) TemplateHints() []string {
	return components.Region.TemplateHints()
}

// Len returns the number of components.
func (components RegionComponents) Len() int { return len(components.Components) }

// OrderFunc sorts the merged placements of one region.
type OrderFunc func(placements []Placement) []Placement

// ByPosition stable-sorts placements by ascending position.
//
// Equal positions keep merge order, so ancestors come before descendants.
func ByPosition(placements []Placement) []Placement {
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].Position < placements[j].Position
	})
	return placements
}

// # Composer

// Composer folds the placements of a provider chain into per-region component lists.
type Composer struct {
	catalog *RegionCatalog
	loaders Loaders
	order   OrderFunc
	logger  *slog.Logger
}

// ComposerOption customises a [Composer].
type ComposerOption func(composer *Composer)

// WithOrder replaces the default position ordering.
func WithOrder(order OrderFunc) ComposerOption {
	return func(composer *Composer) { composer.order = order }
}

// NewComposer creates a composer reading regions from catalog and components through loaders.
func NewComposer(catalog *RegionCatalog, loaders Loaders, logger *slog.Logger, options ...ComposerOption) *Composer {
	if logger == nil {
		logger = slog.Default()
	}

	composer := &Composer{
		catalog: catalog,
		loaders: loaders,
		order:   ByPosition,
		logger:  logger,
	}
	for _, option := range options {
		option(composer)
	}
	return composer
}

/*
ComponentsForRegions resolves the components of every region touched by chain.

Description:
 1. Each provider's placements are fetched in chain order; nil providers are skipped.
 2. Lists are folded per region with the region's extend rule. Regions
    missing from the catalog are skipped.
 3. Each merged list is ordered, then resolved to concrete components.
    Placements whose component cannot be loaded are dropped.
 4. The result is keyed by region slug.

Only storage failures are returned. Inconsistent data yields less output.

Parameters:
  - context: context.Context
  - chain: []Provider (outermost first)

Returns:
  - map[string]RegionComponents: Keyed by region slug
  - error: Storage failures
*/
func (composer *Composer) ComponentsForRegions(context context.Context, chain []Provider) (map[string]RegionComponents, error) {
	snapshot, err := composer.catalog.Snapshot(context)
	if err != nil {
		return nil, err
	}

	// ── 1. Fold ──────────────────────────────────────────────────────────
	merged := make(map[string][]Placement)
	regionOrder := make([]string, 0)

	for _, provider := range chain {
		if pointer.IsNil(provider) {
			continue
		}

		byRegion, err := provider.ComponentsByRegion(context)
		if err != nil {
			return nil, err
		}

		for _, regionID := range sortedKeys(byRegion) {
			region, ok := snapshot.ByID(regionID)
			if !ok {
				composer.logger.DebugContext(context, "composition_unknown_region_skipped",
					slog.String("region_id", regionID),
				)
				continue
			}

			if _, seen := merged[region.Slug]; !seen {
				regionOrder = append(regionOrder, region.Slug)
			}
			merged[region.Slug] = Extend(region.ExtendRule, merged[region.Slug], byRegion[regionID])
		}
	}

	// ── 2. Order & Resolve ───────────────────────────────────────────────
	result := make(map[string]RegionComponents, len(merged))

	for _, slug := range regionOrder {
		region, _ := snapshot.BySlug(slug)
		placements := composer.order(merged[slug])

		components := make([]Component, 0, len(placements))
		for _, placement := range placements {
			component, err := placement.Ref().Resolve(context, composer.loaders)
			if err != nil {
				return nil, err
			}
			if component == nil {
				composer.logger.DebugContext(context, "composition_component_dropped",
					slog.String("region", slug),
					slog.String("kind", placement.ComponentKind),
					slog.String("component_id", placement.ComponentID),
				)
				continue
			}
			components = append(components, component)
		}

		result[slug] = RegionComponents{Region: region, Components: components}
	}

	return result, nil
}

// HintProviders returns the providers used when rendering a component of
// region: the region first, then the enclosing providers.
func HintProviders(region RegionComponents, parents ...hint.Provider) hint.Composite {
	return hint.Of(append([]hint.Provider{region}, parents...)...)
}

func sortedKeys(byRegion map[string][]Placement) []string {
	keys := make([]string, 0, len(byRegion))
	for key := range byRegion {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
