// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// # Region Catalog

// RegionSnapshot is an immutable view over all regions at one point in time.
type RegionSnapshot struct {
	bySlug map[string]Region
	byID   map[string]Region
	order  []Region
}

// BySlug returns the region with slug.
func (snapshot *RegionSnapshot) BySlug(slug string) (Region, bool) {
	region, ok := snapshot.bySlug[slug]
	return region, ok
}

// ByID returns the region with id.
func (snapshot *RegionSnapshot) ByID(id string) (Region, bool) {
	region, ok := snapshot.byID[id]
	return region, ok
}

// All returns the regions ordered by position, then slug.
func (snapshot *RegionSnapshot) All() []Region {
	return append([]Region(nil), snapshot.order...)
}

// Len returns the number of regions.
func (snapshot *RegionSnapshot) Len() int { return len(snapshot.order) }

// NewRegionSnapshot indexes regions by slug and id.
func NewRegionSnapshot(regions []*Region) *RegionSnapshot {
	snapshot := &RegionSnapshot{
		bySlug: make(map[string]Region, len(regions)),
		byID:   make(map[string]Region, len(regions)),
		order:  make([]Region, 0, len(regions)),
	}

	for _, region := range regions {
		if region == nil {
			continue
		}
		snapshot.bySlug[region.Slug] = *region
		snapshot.byID[region.ID] = *region
		snapshot.order = append(snapshot.order, *region)
	}

	sort.SliceStable(snapshot.order, func(i, j int) bool {
		if snapshot.order[i].Position != snapshot.order[j].Position {
			return snapshot.order[i].Position < snapshot.order[j].Position
		}
		return snapshot.order[i].Slug < snapshot.order[j].Slug
	})

	return snapshot
}

/*
RegionCatalog caches the region table for the whole process.

Description: The catalog is built lazily on first use. A complete snapshot is
swapped in atomically, readers never observe a half-built table. Concurrent
rebuilds triggered by the same miss are collapsed into a single query. Clear
drops the snapshot; the next read rebuilds it.

# Concurrency

All methods are safe for concurrent use.
*/
type RegionCatalog struct {
	repo     RegionRepository
	logger   *slog.Logger
	snapshot atomic.Pointer[RegionSnapshot]
	group    singleflight.Group

	// generation is bumped by Clear so an in-flight rebuild cannot store a stale table.
	generation atomic.Uint64
}

// NewRegionCatalog creates an empty catalog backed by repo.
func NewRegionCatalog(repo RegionRepository, logger *slog.Logger) *RegionCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegionCatalog{repo: repo, logger: logger}
}

// Snapshot returns the current snapshot, building it if needed.
func (catalog *RegionCatalog) Snapshot(ctx context.Context) (*RegionSnapshot, error) {
	if snapshot := catalog.snapshot.Load(); snapshot != nil {
		return snapshot, nil
	}

	generation := catalog.generation.Load()
	key := strconv.FormatUint(generation, 10)

	// Every waiter shares this load; it is not cancelled with the caller that started it.
	detached := context.WithoutCancel(ctx)

	value, err, _ := catalog.group.Do(key, func() (any, error) {
		regions, err := catalog.repo.ListRegions(detached)
		if err != nil {
			return nil, fmt.Errorf("layout: load region catalog: %w", err)
		}

		snapshot := NewRegionSnapshot(regions)
		if catalog.generation.Load() == generation {
			catalog.snapshot.CompareAndSwap(nil, snapshot)
			if catalog.generation.Load() != generation {
				catalog.snapshot.CompareAndSwap(snapshot, nil)
			}
		}

		catalog.logger.DebugContext(detached, "region_catalog_rebuilt",
			slog.Int("regions", snapshot.Len()),
		)
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}

	return value.(*RegionSnapshot), nil
}

// BySlug looks up a region by slug.
func (catalog *RegionCatalog) BySlug(context context.Context, slug string) (Region, bool, error) {
	snapshot, err := catalog.Snapshot(context)
	if err != nil {
		return Region{}, false, err
	}
	region, ok := snapshot.BySlug(slug)
	return region, ok, nil
}

// ByID looks up a region by id.
func (catalog *RegionCatalog) ByID(context context.Context, id string) (Region, bool, error) {
	snapshot, err := catalog.Snapshot(context)
	if err != nil {
		return Region{}, false, err
	}
	region, ok := snapshot.ByID(id)
	return region, ok, nil
}

// Clear drops the cached snapshot.
func (catalog *RegionCatalog) Clear() {
	catalog.generation.Add(1)
	catalog.snapshot.Store(nil)
}
