// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/mosaic/internal/platform/request"
	"github.com/taibuivan/mosaic/internal/platform/respond"
	"github.com/taibuivan/mosaic/pkg/query"
	"github.com/taibuivan/mosaic/pkg/slice"
)

// QueryRegions is the optional comma-separated list of region slugs returned by the composition endpoint.
const QueryRegions = "regions"

// Renderer writes the HTML of a composed page.
type Renderer interface {
	RenderPage(context context.Context, writer io.Writer, composition *Composition) error
}

// # Handler Implementation

// Handler exposes page compositions as JSON and, with a renderer, as HTML.
type Handler struct {
	service  *Service
	renderer Renderer
}

// NewHandler constructs a page [Handler]. renderer may be nil, in which case no HTML routes are served.
func NewHandler(service *Service, renderer Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// APIRoutes returns the JSON endpoints.
func (handler *Handler) APIRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{slug}/composition", handler.getComposition)
	return router
}

// HTMLRoutes returns the rendered page endpoints, or nil without a renderer.
func (handler *Handler) HTMLRoutes() chi.Router {
	if handler.renderer == nil {
		return nil
	}
	router := chi.NewRouter()
	router.Get("/{slug}", handler.renderPage)
	return router
}

// # Composition

type componentResponse struct {
	Kind          string         `json:"kind"`
	TemplateNames []string       `json:"template_names"`
	Data          map[string]any `json:"data"`
}

type regionResponse struct {
	Region        layout.Region       `json:"region"`
	TemplateHints []string            `json:"template_hints"`
	Components    []componentResponse `json:"components"`
}

type compositionResponse struct {
	Page          *Page                     `json:"page"`
	Layout        *string                   `json:"layout"`
	TemplateNames []string                  `json:"template_names"`
	Regions       map[string]regionResponse `json:"regions"`
}

// newCompositionResponse renders composition. A non-empty only keeps the regions it names.
func newCompositionResponse(composition *Composition, only []string) compositionResponse {
	response := compositionResponse{
		Page:          composition.Page,
		TemplateNames: composition.TemplateNames,
		Regions:       make(map[string]regionResponse, len(composition.Regions)),
	}
	if composition.Layout != nil {
		response.Layout = &composition.Layout.Slug
	}

	for slug, region := range composition.Regions {
		if len(only) > 0 && !slices.Contains(only, slug) {
			continue
		}

		components := slice.Map(region.Components, func(component layout.Component) componentResponse {
			return componentResponse{
				Kind:          component.Kind(),
				TemplateNames: composition.ComponentTemplateNames(slug, component),
				Data:          component.ContextData(),
			}
		})
		if components == nil {
			components = []componentResponse{}
		}

		response.Regions[slug] = regionResponse{
			Region:        region.Region,
			TemplateHints: composition.ComponentHints(slug).TemplateHints(),
			Components:    components,
		}
	}

	return response
}

func (handler *Handler) compose(request *http.Request) (*Composition, error) {
	view, err := handler.service.View(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		return nil, err
	}
	return view.Compose(request.Context())
}

func (handler *Handler) getComposition(writer http.ResponseWriter, request *http.Request) {
	composition, err := handler.compose(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	only := query.StringSlice(request.URL.Query().Get(QueryRegions))
	respond.OK(writer, newCompositionResponse(composition, only))
}

// # HTML

func (handler *Handler) renderPage(writer http.ResponseWriter, request *http.Request) {
	composition, err := handler.compose(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Render into a buffer so a template failure can still produce an error response.
	var buffer bytes.Buffer
	if err := handler.renderer.RenderPage(request.Context(), &buffer, composition); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "page_render_failed",
			slog.String("page", composition.Page.Slug),
			slog.Any("error", err),
		)
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = buffer.WriteTo(writer)
}
