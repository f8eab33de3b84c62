// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mosaic/internal/platform/middleware"
	requestutil "github.com/taibuivan/mosaic/internal/platform/request"
	"github.com/taibuivan/mosaic/internal/platform/respond"
	"github.com/taibuivan/mosaic/internal/platform/sec"
	"github.com/taibuivan/mosaic/pkg/pointer"
)

// # Handler Implementation

// Handler exposes regions, layouts and placements over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new layout [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegionRoutes returns the region endpoints. Mutations require [sec.RoleAdmin].
func (handler *Handler) RegionRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listRegions)
	router.Get("/{slug}", handler.getRegion)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createRegion)
		admin.Patch("/{slug}", handler.updateRegion)
		admin.Delete("/{slug}", handler.deleteRegion)
	})

	return router
}

// LayoutRoutes returns the layout endpoints. Mutations require [sec.RoleAdmin].
func (handler *Handler) LayoutRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{slug}", handler.getLayout)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createLayout)
		admin.Patch("/{slug}", handler.updateLayout)
	})

	return router
}

// PlacementRoutes returns the placement endpoints, all restricted to [sec.RoleModerator].
func (handler *Handler) PlacementRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireRole(sec.RoleModerator))
	router.Post("/", handler.createPlacement)
	router.Delete("/{id}", handler.deletePlacement)

	return router
}

// # Regions

func (handler *Handler) listRegions(writer http.ResponseWriter, request *http.Request) {
	regions, err := handler.service.ListRegions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, regions)
}

func (handler *Handler) getRegion(writer http.ResponseWriter, request *http.Request) {
	region, err := handler.service.GetRegion(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, region)
}

type createRegionRequest struct {
	Name                    string     `json:"name"`
	Slug                    string     `json:"slug"`
	ExtendRule              ExtendRule `json:"extend_rule"`
	Position                int        `json:"position"`
	AvailableComponentTypes []string   `json:"available_component_types"`
}

func (handler *Handler) createRegion(writer http.ResponseWriter, request *http.Request) {
	var input createRegionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	region := &Region{
		Name:                    input.Name,
		Slug:                    input.Slug,
		ExtendRule:              input.ExtendRule,
		Position:                input.Position,
		AvailableComponentTypes: input.AvailableComponentTypes,
	}

	if err := handler.service.CreateRegion(request.Context(), region); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, region)
}

func (handler *Handler) updateRegion(writer http.ResponseWriter, request *http.Request) {
	var patch RegionPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	region, err := handler.service.UpdateRegion(request.Context(), requestutil.Param(request, "slug"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, region)
}

func (handler *Handler) deleteRegion(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteRegion(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Layouts

// layoutResponse adds the computed hint chain to a layout.
type layoutResponse struct {
	*Layout
	Ancestors     []string `json:"ancestors"`
	TemplateHints []string `json:"template_hints"`
}

func newLayoutResponse(layout *Layout) layoutResponse {
	providers := layout.ComponentProviders()
	ancestors := make([]string, 0, len(providers))
	for _, node := range providers[:len(providers)-1] {
		ancestors = append(ancestors, node.Slug)
	}
	return layoutResponse{Layout: layout, Ancestors: ancestors, TemplateHints: layout.TemplateHints()}
}

func (handler *Handler) getLayout(writer http.ResponseWriter, request *http.Request) {
	layout, err := handler.service.GetLayout(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, newLayoutResponse(layout))
}

func (handler *Handler) createLayout(writer http.ResponseWriter, request *http.Request) {
	var input LayoutInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	layout, err := handler.service.CreateLayout(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, newLayoutResponse(layout))
}

func (handler *Handler) updateLayout(writer http.ResponseWriter, request *http.Request) {
	var input LayoutInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	layout, err := handler.service.UpdateLayout(request.Context(), requestutil.Param(request, "slug"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, newLayoutResponse(layout))
}

// # Placements

type createPlacementRequest struct {
	ProviderKind  ProviderKind `json:"provider_kind"`
	ProviderID    string       `json:"provider_id"`
	RegionID      string       `json:"region_id"`
	ComponentKind string       `json:"component_kind"`
	ComponentID   string       `json:"component_id"`
	Position      int          `json:"position"`
	Visible       *bool        `json:"visible"`
}

func (handler *Handler) createPlacement(writer http.ResponseWriter, request *http.Request) {
	var input createPlacementRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	placement := &Placement{
		ProviderKind:  input.ProviderKind,
		ProviderID:    input.ProviderID,
		RegionID:      input.RegionID,
		ComponentKind: input.ComponentKind,
		ComponentID:   input.ComponentID,
		Position:      input.Position,
		Visible:       pointer.Fallback(input.Visible, true),
	}

	if err := handler.service.CreatePlacement(request.Context(), placement); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, placement)
}

func (handler *Handler) deletePlacement(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePlacement(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
