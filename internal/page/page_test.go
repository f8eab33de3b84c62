// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mosaic/internal/component"
	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/layout/layouttest"
	"github.com/taibuivan/mosaic/internal/link"
	"github.com/taibuivan/mosaic/internal/page"
	"github.com/taibuivan/mosaic/internal/platform/apperr"
	"github.com/taibuivan/mosaic/internal/platform/dberr"
	"github.com/taibuivan/mosaic/pkg/pointer"
)

// # Fixtures

type pageStore struct {
	mu    sync.Mutex
	pages map[string]*page.Page
}

func newPageStore(pages ...*page.Page) *pageStore {
	store := &pageStore{pages: make(map[string]*page.Page)}
	for _, record := range pages {
		store.pages[record.ID] = record
	}
	return store
}

func (store *pageStore) GetPageBySlug(_ context.Context, slug string) (*page.Page, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, record := range store.pages {
		if record.Slug == slug {
			copied := *record
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (store *pageStore) GetPageByID(_ context.Context, id string) (*page.Page, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, ok := store.pages[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

// site seeds two regions, a base/article layout chain and their placements.
//
//	sidebar (combine):   base C1@0, article C2@2, about C3@1
//	header  (overwrite): base H1@0, about H2@0
func site(t *testing.T) *layouttest.Memory {
	t.Helper()
	ctx := context.Background()

	repo := layouttest.NewMemory(
		&layout.Region{ID: "r-sidebar", Slug: "sidebar", ExtendRule: layout.ExtendCombine, AvailableComponentTypes: []string{"text"}},
		&layout.Region{ID: "r-header", Slug: "header", ExtendRule: layout.ExtendOverwrite, AvailableComponentTypes: []string{"text"}},
	)
	require.NoError(t, repo.CreateLayout(ctx, &layout.Layout{ID: "L-base", Slug: "base"}))
	require.NoError(t, repo.CreateLayout(ctx, &layout.Layout{ID: "L-article", Slug: "article", ParentID: pointer.To("L-base")}))

	for _, placement := range []layout.Placement{
		{ID: "1", ProviderKind: layout.ProviderLayout, ProviderID: "L-base", RegionID: "r-sidebar", ComponentKind: "text", ComponentID: "C1", Position: 0, Visible: true},
		{ID: "2", ProviderKind: layout.ProviderLayout, ProviderID: "L-article", RegionID: "r-sidebar", ComponentKind: "text", ComponentID: "C2", Position: 2, Visible: true},
		{ID: "3", ProviderKind: layout.ProviderPage, ProviderID: "P-about", RegionID: "r-sidebar", ComponentKind: "text", ComponentID: "C3", Position: 1, Visible: true},
		{ID: "4", ProviderKind: layout.ProviderLayout, ProviderID: "L-base", RegionID: "r-header", ComponentKind: "text", ComponentID: "H1", Visible: true},
		{ID: "5", ProviderKind: layout.ProviderPage, ProviderID: "P-about", RegionID: "r-header", ComponentKind: "text", ComponentID: "H2", Visible: true},
		{ID: "6", ProviderKind: layout.ProviderPage, ProviderID: "P-about", RegionID: "r-sidebar", ComponentKind: "text", ComponentID: "hidden", Visible: false},
	} {
		placement := placement
		require.NoError(t, repo.CreatePlacement(ctx, &placement))
	}
	return repo
}

func newService(repo *layouttest.Memory, pages *pageStore, defaultLayout string) *page.Service {
	catalog := layout.NewRegionCatalog(repo, nil)
	composer := layout.NewComposer(catalog, layouttest.StubLoaders("text"), nil)
	return page.NewService(pages, repo, repo, catalog, composer, defaultLayout, nil)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus
}

// # Tests

/*
TestView_Compose verifies the full chain: layout ancestors, page, extend rules and hints.
*/
func TestView_Compose(t *testing.T) {
	pages := newPageStore(&page.Page{ID: "P-about", Slug: "about", LayoutID: pointer.To("L-article"), IsPublished: true})
	service := newService(site(t), pages, "base")
	ctx := context.Background()

	view, err := service.View(ctx, "about")
	require.NoError(t, err)
	require.NotNil(t, view.Layout)
	assert.Equal(t, "article", view.Layout.Slug)

	composition, err := view.Compose(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"C1", "C3", "C2"}, layouttest.IDs(composition.Regions["sidebar"].Components))
	assert.Equal(t, []string{"H2"}, layouttest.IDs(composition.Regions["header"].Components))

	assert.Equal(t, []string{
		"detail/page-about/page.html",
		"detail/layout-article/page.html",
		"detail/layout-base/page.html",
		"detail/page.html",
	}, composition.TemplateNames)

	text := composition.Regions["sidebar"].Components[0]
	assert.Equal(t, []string{
		"partial/region-sidebar/text.html",
		"partial/page-about/text.html",
		"partial/layout-article/text.html",
		"partial/layout-base/text.html",
		"partial/text.html",
	}, composition.ComponentTemplateNames("sidebar", text))

	data := composition.Context()
	assert.Same(t, composition.Page, data["page"])
	assert.Contains(t, data, "regions")
}

/*
TestView_DefaultLayout covers the fallback layout and its absence.
*/
func TestView_DefaultLayout(t *testing.T) {
	pages := newPageStore(&page.Page{ID: "P-about", Slug: "about", IsPublished: true})
	ctx := context.Background()

	view, err := newService(site(t), pages, "base").View(ctx, "about")
	require.NoError(t, err)
	require.NotNil(t, view.Layout)
	assert.Equal(t, []string{"page-about", "layout-base"}, view.HintProviders().TemplateHints())

	view, err = newService(site(t), pages, "missing").View(ctx, "about")
	require.NoError(t, err)
	assert.Nil(t, view.Layout)
	assert.Equal(t, []string{"page-about"}, view.HintProviders().TemplateHints())

	composition, err := view.Compose(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C3"}, layouttest.IDs(composition.Regions["sidebar"].Components))
	assert.Equal(t, []string{"H2"}, layouttest.IDs(composition.Regions["header"].Components))
}

/*
TestView_NotFound verifies missing and unpublished pages are hidden.
*/
func TestView_NotFound(t *testing.T) {
	pages := newPageStore(&page.Page{ID: "P-draft", Slug: "draft"})
	service := newService(site(t), pages, "base")

	tests := []struct {
		name string
		slug string
	}{
		{"missing", "nope"},
		{"unpublished", "draft"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.View(context.Background(), tt.slug)
			assert.Equal(t, http.StatusNotFound, statusOf(t, err))
		})
	}
}

/*
TestView_AddExtraComponent verifies extras fold last and respect the region rule.
*/
func TestView_AddExtraComponent(t *testing.T) {
	pages := newPageStore(&page.Page{ID: "P-about", Slug: "about", LayoutID: pointer.To("L-article"), IsPublished: true})
	service := newService(site(t), pages, "base")
	ctx := context.Background()

	view, err := service.View(ctx, "about")
	require.NoError(t, err)

	require.NoError(t, view.AddExtraComponent(ctx, "header", component.NewFixedTemplate("breadcrumbs.html", 0, nil)))
	require.NoError(t, view.AddExtraComponent(ctx, "sidebar", component.NewFixedTemplate("promo.html", 5, nil)))
	assert.Equal(t, http.StatusNotFound, statusOf(t, view.AddExtraComponent(ctx, "footer", component.NewFixedTemplate("x.html", 0, nil))))

	composition, err := view.Compose(ctx)
	require.NoError(t, err)

	header := composition.Regions["header"].Components
	require.Len(t, header, 1)
	assert.Equal(t, "breadcrumbs.html", header[0].TemplateBasename())

	sidebar := composition.Regions["sidebar"].Components
	require.Len(t, sidebar, 4)
	assert.Equal(t, component.KindFixedTemplate, sidebar[3].Kind())
}

/*
TestResolver verifies pages are linkable as "page/<id>".
*/
func TestResolver(t *testing.T) {
	about := &page.Page{ID: "P-about", Slug: "about", IsPublished: true}
	draft := &page.Page{ID: "P-draft", Slug: "draft"}
	registry := link.NewRegistry(nil)
	require.NoError(t, registry.Register(page.ObjectType, page.NewResolver(newPageStore(about, draft))))
	ctx := context.Background()

	url, err := registry.Resolve(ctx, "page", "P-about")
	require.NoError(t, err)
	assert.Equal(t, "/pages/about", url)

	_, err = registry.Resolve(ctx, "page", "P-gone")
	assert.ErrorIs(t, err, link.ErrResolve)

	_, err = registry.Resolve(ctx, "page", "P-draft")
	assert.ErrorIs(t, err, link.ErrResolve)

	reference, err := registry.Reverse(about)
	require.NoError(t, err)
	assert.Equal(t, "page/P-about", reference)

	_, err = registry.Reverse(&layout.Layout{ID: "L-base"})
	assert.Error(t, err, "layouts are not linkable")
}
