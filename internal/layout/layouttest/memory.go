// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package layouttest provides in-memory storage and stub components for tests
// of packages built on top of layout.
package layouttest

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/platform/dberr"
)

// Memory is an in-memory [layout.Repository].
type Memory struct {
	mu         sync.Mutex
	regions    map[string]*layout.Region
	layouts    map[string]*layout.Layout
	placements map[string]*layout.Placement
	ListCalls  atomic.Int32
	ListErr    error
}

// NewMemory returns a repository seeded with regions.
func NewMemory(regions ...*layout.Region) *Memory {
	repo := &Memory{
		regions:    make(map[string]*layout.Region),
		layouts:    make(map[string]*layout.Layout),
		placements: make(map[string]*layout.Placement),
	}
	for _, region := range regions {
		repo.regions[region.Slug] = region
	}
	return repo
}

func (repo *Memory) ListRegions(context.Context) ([]*layout.Region, error) {
	repo.ListCalls.Add(1)
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.ListErr != nil {
		return nil, repo.ListErr
	}

	regions := make([]*layout.Region, 0, len(repo.regions))
	for _, region := range repo.regions {
		copied := *region
		regions = append(regions, &copied)
	}
	return regions, nil
}

func (repo *Memory) GetRegionBySlug(_ context.Context, slug string) (*layout.Region, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	region, ok := repo.regions[slug]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *region
	return &copied, nil
}

func (repo *Memory) CreateRegion(_ context.Context, region *layout.Region) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	copied := *region
	repo.regions[region.Slug] = &copied
	return nil
}

func (repo *Memory) UpdateRegion(_ context.Context, region *layout.Region) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for slug, existing := range repo.regions {
		if existing.ID == region.ID {
			delete(repo.regions, slug)
		}
	}
	copied := *region
	repo.regions[region.Slug] = &copied
	return nil
}

func (repo *Memory) DeleteRegion(_ context.Context, slug string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.regions[slug]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.regions, slug)
	return nil
}

// link rebuilds the Parent chain from ParentID, stopping on cycles.
func (repo *Memory) link(record *layout.Layout) *layout.Layout {
	head := *record
	visited := map[string]bool{head.ID: true}

	node := &head
	for node.ParentID != nil {
		parent, ok := repo.byID(*node.ParentID)
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		copied := *parent
		node.Parent = &copied
		node = &copied
	}
	return &head
}

func (repo *Memory) byID(id string) (*layout.Layout, bool) {
	for _, record := range repo.layouts {
		if record.ID == id {
			return record, true
		}
	}
	return nil, false
}

func (repo *Memory) GetLayoutBySlug(_ context.Context, slug string) (*layout.Layout, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	record, ok := repo.layouts[slug]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return repo.link(record), nil
}

func (repo *Memory) GetLayoutByID(_ context.Context, id string) (*layout.Layout, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	record, ok := repo.byID(id)
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return repo.link(record), nil
}

func (repo *Memory) CreateLayout(_ context.Context, record *layout.Layout) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	copied := *record
	copied.Parent = nil
	repo.layouts[record.Slug] = &copied
	return nil
}

// UpdateLayout rejects a parent whose stored chain already contains record.
func (repo *Memory) UpdateLayout(_ context.Context, record *layout.Layout) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	visited := make(map[string]struct{})
	for id := record.ParentID; id != nil; {
		if *id == record.ID {
			return layout.ErrLayoutCycle
		}
		if _, seen := visited[*id]; seen {
			break
		}
		visited[*id] = struct{}{}

		parent, ok := repo.byID(*id)
		if !ok {
			break
		}
		id = parent.ParentID
	}

	for slug, existing := range repo.layouts {
		if existing.ID == record.ID {
			delete(repo.layouts, slug)
		}
	}
	copied := *record
	copied.Parent = nil
	repo.layouts[record.Slug] = &copied
	return nil
}

func (repo *Memory) ListPlacements(_ context.Context, kind layout.ProviderKind, providerID string, filter layout.PlacementFilter) ([]*layout.Placement, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	placements := make([]*layout.Placement, 0)
	for _, placement := range repo.placements {
		if placement.ProviderKind != kind || placement.ProviderID != providerID {
			continue
		}
		if filter.VisibleOnly && !placement.Visible {
			continue
		}
		copied := *placement
		placements = append(placements, &copied)
	}
	sort.Slice(placements, func(i, j int) bool { return placements[i].ID < placements[j].ID })
	return placements, nil
}

func (repo *Memory) CreatePlacement(_ context.Context, placement *layout.Placement) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	copied := *placement
	repo.placements[placement.ID] = &copied
	return nil
}

func (repo *Memory) DeletePlacement(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.placements[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.placements, id)
	return nil
}

// # Components

// Stub is a minimal [layout.Component] identified by a kind tag and an id.
type Stub struct {
	Tag string
	ID  string
}

func (stub Stub) Kind() string             { return stub.Tag }
func (stub Stub) TemplateBasename() string { return stub.Tag + ".html" }
func (stub Stub) ContextData() map[string]any {
	return map[string]any{"id": stub.ID}
}

// StubLoaders returns loaders for the given kinds that resolve every id except "missing".
func StubLoaders(kinds ...string) layout.Loaders {
	loaders := layout.Loaders{}
	for _, kind := range kinds {
		kind := kind
		loaders.Register(kind, layout.LoaderFunc(func(_ context.Context, id string) (layout.Component, error) {
			if id == "missing" {
				return nil, nil
			}
			return Stub{Tag: kind, ID: id}, nil
		}))
	}
	return loaders
}

// IDs returns the ids of stub components, in order.
func IDs(components []layout.Component) []string {
	result := make([]string, 0, len(components))
	for _, component := range components {
		result = append(result, component.ContextData()["id"].(string))
	}
	return result
}
