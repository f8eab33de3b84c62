// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mosaic/internal/hint"
	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/layout/layouttest"
)

func sidebar(rule layout.ExtendRule) *layout.Region {
	return &layout.Region{ID: "r-sidebar", Name: "Sidebar", Slug: "sidebar", ExtendRule: rule, AvailableComponentTypes: []string{"text"}}
}

func newComposer(repo *layouttest.Memory, options ...layout.ComposerOption) *layout.Composer {
	catalog := layout.NewRegionCatalog(repo, nil)
	return layout.NewComposer(catalog, layouttest.StubLoaders("text"), nil, options...)
}

/*
TestComponentsForRegions_Scenario places C1 on the base layout and C2 on the page.
*/
func TestComponentsForRegions_Scenario(t *testing.T) {
	repo := layouttest.NewMemory(sidebar(layout.ExtendCombine))

	base := layout.StaticProvider{}
	base.Add(placed("r-sidebar", "C1", 0))
	page := layout.StaticProvider{}
	page.Add(placed("r-sidebar", "C2", 1))

	result, err := newComposer(repo).ComponentsForRegions(context.Background(), []layout.Provider{base, page})
	require.NoError(t, err)

	require.Contains(t, result, "sidebar")
	assert.Equal(t, []string{"C1", "C2"}, layouttest.IDs(result["sidebar"].Components))
	assert.Equal(t, "Sidebar", result["sidebar"].Region.Name)
	assert.Equal(t, []string{"region-sidebar"}, result["sidebar"].TemplateHints())
}

/*
TestComponentsForRegions_SortAfterMerge verifies ordering spans all contributors.
*/
func TestComponentsForRegions_SortAfterMerge(t *testing.T) {
	repo := layouttest.NewMemory(sidebar(layout.ExtendCombine))

	ancestor := layout.StaticProvider{}
	ancestor.Add(placed("r-sidebar", "ancestor", 5))
	page := layout.StaticProvider{}
	page.Add(placed("r-sidebar", "page", 1))

	result, err := newComposer(repo).ComponentsForRegions(context.Background(), []layout.Provider{ancestor, page})
	require.NoError(t, err)
	assert.Equal(t, []string{"page", "ancestor"}, layouttest.IDs(result["sidebar"].Components))
}

/*
TestComponentsForRegions_Overwrite verifies later non-empty contributions replace earlier ones.
*/
func TestComponentsForRegions_Overwrite(t *testing.T) {
	repo := layouttest.NewMemory(sidebar(layout.ExtendOverwrite))

	ancestor := layout.StaticProvider{}
	ancestor.Add(placed("r-sidebar", "A1", 0))
	ancestor.Add(placed("r-sidebar", "A2", 1))
	empty := layout.StaticProvider{}
	page := layout.StaticProvider{}
	page.Add(placed("r-sidebar", "P1", 9))

	composer := newComposer(repo)

	result, err := composer.ComponentsForRegions(context.Background(), []layout.Provider{ancestor, empty})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, layouttest.IDs(result["sidebar"].Components))

	result, err = composer.ComponentsForRegions(context.Background(), []layout.Provider{ancestor, nil, page})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, layouttest.IDs(result["sidebar"].Components))
}

/*
TestComponentsForRegions_Degrades checks stale regions and missing components are dropped silently.
*/
func TestComponentsForRegions_Degrades(t *testing.T) {
	repo := layouttest.NewMemory(sidebar(layout.ExtendCombine))

	provider := layout.StaticProvider{}
	provider.Add(placed("r-deleted", "orphan", 0))
	provider.Add(placed("r-sidebar", "missing", 0))
	provider.Add(placed("r-sidebar", "kept", 1))
	unknownKind := placed("r-sidebar", "video", 2)
	unknownKind.ComponentKind = "video"
	provider.Add(unknownKind)

	result, err := newComposer(repo).ComponentsForRegions(context.Background(), []layout.Provider{provider})
	require.NoError(t, err)

	assert.Len(t, result, 1)
	assert.Equal(t, []string{"kept"}, layouttest.IDs(result["sidebar"].Components))

	empty, err := newComposer(repo).ComponentsForRegions(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

/*
TestComponentsForRegions_AbsentProviders verifies nil and typed-nil providers contribute nothing.
*/
func TestComponentsForRegions_AbsentProviders(t *testing.T) {
	repo := layouttest.NewMemory(sidebar(layout.ExtendCombine))

	provider := layout.StaticProvider{}
	provider.Add(placed("r-sidebar", "kept", 0))

	var stored *layout.StoredProvider
	var static layout.StaticProvider

	chain := []layout.Provider{nil, stored, provider, static}

	var result map[string]layout.RegionComponents
	var err error
	require.NotPanics(t, func() {
		result, err = newComposer(repo).ComponentsForRegions(context.Background(), chain)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, layouttest.IDs(result["sidebar"].Components))
}

type failingProvider struct{ err error }

func (provider failingProvider) ComponentsByRegion(context.Context) (map[string][]layout.Placement, error) {
	return nil, provider.err
}

/*
TestComponentsForRegions_StorageFailure verifies storage errors propagate.
*/
func TestComponentsForRegions_StorageFailure(t *testing.T) {
	boom := errors.New("connection refused")
	repo := layouttest.NewMemory(sidebar(layout.ExtendCombine))

	_, err := newComposer(repo).ComponentsForRegions(context.Background(), []layout.Provider{failingProvider{err: boom}})
	assert.ErrorIs(t, err, boom)

	repo.ListErr = boom
	_, err = newComposer(repo).ComponentsForRegions(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

/*
TestComponentsForRegions_InlineAndOrder covers in-memory components and a custom order.
*/
func TestComponentsForRegions_InlineAndOrder(t *testing.T) {
	repo := layouttest.NewMemory(sidebar(layout.ExtendCombine))

	provider := layout.StaticProvider{}
	provider.Add(placed("r-sidebar", "stored", 0))
	provider.Add(layout.InlinePlacement("r-sidebar", 1, layouttest.Stub{Tag: "banner", ID: "inline"}))

	reverse := func(placements []layout.Placement) []layout.Placement {
		for i, j := 0, len(placements)-1; i < j; i, j = i+1, j-1 {
			placements[i], placements[j] = placements[j], placements[i]
		}
		return placements
	}

	result, err := newComposer(repo, layout.WithOrder(reverse)).ComponentsForRegions(context.Background(), []layout.Provider{provider})
	require.NoError(t, err)
	assert.Equal(t, []string{"inline", "stored"}, layouttest.IDs(result["sidebar"].Components))
}

/*
TestStoredProvider verifies visible placements are grouped per region.
*/
func TestStoredProvider(t *testing.T) {
	repo := layouttest.NewMemory()
	ctx := context.Background()

	for _, p := range []layout.Placement{
		{ID: "1", ProviderKind: layout.ProviderLayout, ProviderID: "L", RegionID: "a", Visible: true},
		{ID: "2", ProviderKind: layout.ProviderLayout, ProviderID: "L", RegionID: "b", Visible: true},
		{ID: "3", ProviderKind: layout.ProviderLayout, ProviderID: "L", RegionID: "a", Visible: false},
		{ID: "4", ProviderKind: layout.ProviderPage, ProviderID: "L", RegionID: "a", Visible: true},
	} {
		p := p
		require.NoError(t, repo.CreatePlacement(ctx, &p))
	}

	byRegion, err := layout.NewStoredProvider(repo, layout.ProviderLayout, "L").ComponentsByRegion(ctx)
	require.NoError(t, err)
	assert.Len(t, byRegion["a"], 1)
	assert.Len(t, byRegion["b"], 1)

	providers := layout.LayoutProviders(repo, chain("child", "base"))
	assert.Len(t, providers, 2)
	assert.Nil(t, layout.LayoutProviders(repo, nil))
}

/*
TestHintProviders verifies the region comes before enclosing providers.
*/
func TestHintProviders(t *testing.T) {
	region := layout.RegionComponents{Region: layout.Region{Slug: "sidebar"}}
	providers := layout.HintProviders(region, hint.Static{"page-home"}, nil, chain("home", "base"))

	assert.Equal(t,
		[]string{"region-sidebar", "page-home", "layout-home", "layout-base"},
		providers.TemplateHints(),
	)
}

/*
TestRegionCatalog covers lazy build, lookups and clearing.
*/
func TestRegionCatalog(t *testing.T) {
	repo := layouttest.NewMemory(sidebar(layout.ExtendCombine), &layout.Region{ID: "r-main", Slug: "main", Position: -1})
	catalog := layout.NewRegionCatalog(repo, nil)
	ctx := context.Background()

	region, ok, err := catalog.BySlug(ctx, "sidebar")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "r-sidebar", region.ID)

	_, ok, err = catalog.ByID(ctx, "r-main")
	require.NoError(t, err)
	assert.True(t, ok)

	snapshot, err := catalog.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", snapshot.All()[0].Slug)
	assert.EqualValues(t, 1, repo.ListCalls.Load())

	require.NoError(t, repo.CreateRegion(ctx, &layout.Region{ID: "r-footer", Slug: "footer"}))
	_, ok, _ = catalog.BySlug(ctx, "footer")
	assert.False(t, ok, "snapshot is not refreshed until cleared")

	catalog.Clear()
	_, ok, err = catalog.BySlug(ctx, "footer")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 2, repo.ListCalls.Load())
}

// cancellationAware fails region loads whose context is already done.
type cancellationAware struct {
	*layouttest.Memory
}

func (repo cancellationAware) ListRegions(ctx context.Context) ([]*layout.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repo.Memory.ListRegions(ctx)
}

/*
TestRegionCatalog_CallerCancelled verifies the shared load ignores the first caller's cancellation.
*/
func TestRegionCatalog_CallerCancelled(t *testing.T) {
	repo := cancellationAware{layouttest.NewMemory(sidebar(layout.ExtendCombine))}
	catalog := layout.NewRegionCatalog(repo, nil)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot, err := catalog.Snapshot(cancelled)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Len())

	_, ok, err := catalog.BySlug(context.Background(), "sidebar")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 1, repo.ListCalls.Load())
}

/*
TestRegionCatalog_Concurrent reads while clearing; every read sees a complete snapshot.
*/
func TestRegionCatalog_Concurrent(t *testing.T) {
	regions := []*layout.Region{
		sidebar(layout.ExtendCombine),
		{ID: "r-main", Slug: "main"},
		{ID: "r-footer", Slug: "footer"},
	}
	catalog := layout.NewRegionCatalog(layouttest.NewMemory(regions...), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				snapshot, err := catalog.Snapshot(ctx)
				if err != nil {
					t.Errorf("snapshot: %v", err)
					return
				}
				if snapshot.Len() != len(regions) {
					t.Errorf("partial snapshot with %d regions", snapshot.Len())
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			catalog.Clear()
		}
	}()

	wg.Wait()
}
