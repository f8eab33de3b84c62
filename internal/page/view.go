// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"log/slog"

	"github.com/taibuivan/mosaic/internal/hint"
	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/platform/apperr"
)

// TemplateBasename is the base name of page detail templates.
const TemplateBasename = "page.html"

// Positioned is implemented by extra components that carry their own sort position.
type Positioned interface {
	SortPosition() int
}

// # Service

// Service opens page views.
type Service struct {
	pages         Repository
	layouts       layout.LayoutRepository
	placements    layout.PlacementRepository
	catalog       *layout.RegionCatalog
	composer      *layout.Composer
	defaultLayout string
	logger        *slog.Logger
}

// NewService constructs a page [Service]. defaultLayout is the slug used for pages without a layout.
func NewService(
	pages Repository,
	layouts layout.LayoutRepository,
	placements layout.PlacementRepository,
	catalog *layout.RegionCatalog,
	composer *layout.Composer,
	defaultLayout string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		pages:         pages,
		layouts:       layouts,
		placements:    placements,
		catalog:       catalog,
		composer:      composer,
		defaultLayout: defaultLayout,
		logger:        logger,
	}
}

/*
View opens the published page with slug.

Description: The page's own layout is used when set, otherwise the layout
named by the default slug. A page whose default layout does not exist is
rendered without layout components.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *View: A view ready for extra components and composition
  - error: NotFound for missing or unpublished pages, storage errors
*/
func (service *Service) View(context context.Context, slug string) (*View, error) {
	page, err := service.pages.GetPageBySlug(context, slug)
	if err != nil {
		return nil, err
	}
	if !page.IsPublished {
		return nil, apperr.NotFound("Page")
	}

	chain, err := service.layoutOf(context, page)
	if err != nil {
		return nil, err
	}

	return &View{
		Page:    page,
		Layout:  chain,
		service: service,
		extras:  layout.StaticProvider{},
	}, nil
}

func (service *Service) layoutOf(context context.Context, page *Page) (*layout.Layout, error) {
	if page.LayoutID != nil {
		return service.layouts.GetLayoutByID(context, *page.LayoutID)
	}

	chain, err := service.layouts.GetLayoutBySlug(context, service.defaultLayout)
	if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
		service.logger.WarnContext(context, "page_default_layout_missing",
			slog.String("page", page.Slug),
			slog.String("layout", service.defaultLayout),
		)
		return nil, nil
	}
	return chain, err
}

// # View

// View is one render of a page. It is not safe for concurrent use.
type View struct {
	Page   *Page
	Layout *layout.Layout

	service *Service
	extras  layout.StaticProvider
}

/*
AddExtraComponent injects an in-memory component into the region with regionSlug.

Description: Extras are folded after the page's own placements, so an
overwrite region shows only the extras. Components implementing [Positioned]
are sorted by their position, others by 0.

Returns:
  - error: NotFound when the region does not exist
*/
func (view *View) AddExtraComponent(context context.Context, regionSlug string, component layout.Component) error {
	region, ok, err := view.service.catalog.BySlug(context, regionSlug)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Region")
	}

	position := 0
	if positioned, ok := component.(Positioned); ok {
		position = positioned.SortPosition()
	}

	view.extras.Add(layout.InlinePlacement(region.ID, position, component))
	return nil
}

// Providers returns the composition chain: layout ancestors outermost first, the page, then extras.
func (view *View) Providers() []layout.Provider {
	providers := layout.LayoutProviders(view.service.placements, view.Layout)
	providers = append(providers, view.Page.ComponentProvider(view.service.placements))
	if len(view.extras) > 0 {
		providers = append(providers, view.extras)
	}
	return providers
}

// HintProviders returns the page then the layout chain.
func (view *View) HintProviders() hint.Composite {
	return hint.Of(view.Page, view.Layout)
}

// TemplateNames returns the candidate detail templates of the page.
func (view *View) TemplateNames() []string {
	return hint.Names(hint.TypeDetail, TemplateBasename, view.HintProviders().TemplateHints())
}

// Compose resolves every region of the view.
func (view *View) Compose(context context.Context) (*Composition, error) {
	regions, err := view.service.composer.ComponentsForRegions(context, view.Providers())
	if err != nil {
		return nil, err
	}

	return &Composition{
		Page:          view.Page,
		Layout:        view.Layout,
		Regions:       regions,
		Hints:         view.HintProviders(),
		TemplateNames: view.TemplateNames(),
	}, nil
}

// # Composition

// Composition is the fully resolved content of a view.
type Composition struct {
	Page          *Page
	Layout        *layout.Layout
	Regions       map[string]layout.RegionComponents
	Hints         hint.Composite
	TemplateNames []string
}

// ComponentHints returns the hint providers for components of the region with slug.
func (composition *Composition) ComponentHints(slug string) hint.Composite {
	return layout.HintProviders(composition.Regions[slug], composition.Hints...)
}

// ComponentTemplateNames returns the candidate partial templates of component within region slug.
func (composition *Composition) ComponentTemplateNames(slug string, component layout.Component) []string {
	return hint.Names(hint.TypePartial, component.TemplateBasename(), composition.ComponentHints(slug).TemplateHints())
}

// Context returns the template context of the page: page, layout and regions.
func (composition *Composition) Context() map[string]any {
	return map[string]any{
		"page":    composition.Page,
		"layout":  composition.Layout,
		"regions": composition.Regions,
	}
}
