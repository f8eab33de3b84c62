// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/mosaic/internal/platform/apperr"
	"github.com/taibuivan/mosaic/internal/platform/validate"
	"github.com/taibuivan/mosaic/pkg/pointer"
	"github.com/taibuivan/mosaic/pkg/slug"
	"github.com/taibuivan/mosaic/pkg/uuid"
)

// # Field Identifiers

const (
	FieldName                    = "name"
	FieldSlug                    = "slug"
	FieldExtendRule              = "extend_rule"
	FieldAvailableComponentTypes = "available_component_types"
	FieldParent                  = "parent"
	FieldProviderKind            = "provider_kind"
	FieldProviderID              = "provider_id"
	FieldRegion                  = "region"
	FieldComponentKind           = "component_kind"
	FieldComponentID             = "component_id"
	FieldPosition                = "position"
	FieldID                      = "id"
)

// Position bounds shared by regions and placements.
const (
	MinPosition = -10000
	MaxPosition = 10000
)

// # Service Layer

// Service implements the editing workflows of regions, layouts and placements.
type Service struct {
	repo        Repository
	catalog     *RegionCatalog
	loaders     Loaders
	invalidator Invalidator
	logger      *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, catalog *RegionCatalog, loaders Loaders, invalidator Invalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:        repo,
		catalog:     catalog,
		loaders:     loaders,
		invalidator: invalidator,
		logger:      logger,
	}
}

// # Regions

// ListRegions returns every region ordered by position.
func (service *Service) ListRegions(context context.Context) ([]Region, error) {
	snapshot, err := service.catalog.Snapshot(context)
	if err != nil {
		return nil, err
	}
	return snapshot.All(), nil
}

// GetRegion returns the region with slug.
func (service *Service) GetRegion(context context.Context, slug string) (*Region, error) {
	region, ok, err := service.catalog.BySlug(context, slug)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Region")
	}
	return &region, nil
}

/*
CreateRegion validates and persists a new region.

Description: A missing slug is derived from the name, a missing extend rule
defaults to combine. Every available component type must be a registered
component kind. All processes are told to drop their region catalog.

Parameters:
  - context: context.Context
  - region: *Region

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateRegion(context context.Context, region *Region) error {
	if region.ID == "" {
		region.ID = uuid.New()
	}
	if region.Slug == "" {
		region.Slug = slug.From(region.Name)
	}
	if region.ExtendRule == "" {
		region.ExtendRule = ExtendCombine
	}
	if region.AvailableComponentTypes == nil {
		region.AvailableComponentTypes = []string{}
	}

	if err := service.validateRegion(region); err != nil {
		return err
	}

	if err := service.repo.CreateRegion(context, region); err != nil {
		return err
	}

	service.logger.Info("region_created",
		slog.String("region_id", region.ID),
		slog.String("slug", region.Slug),
	)

	service.regionsChanged(context)
	return nil
}

// RegionPatch holds the optional fields of a region update.
type RegionPatch struct {
	Name                    *string     `json:"name"`
	Slug                    *string     `json:"slug"`
	ExtendRule              *ExtendRule `json:"extend_rule"`
	Position                *int        `json:"position"`
	AvailableComponentTypes []string    `json:"available_component_types"`
}

// UpdateRegion applies patch to the region with slug.
func (service *Service) UpdateRegion(context context.Context, slug string, patch RegionPatch) (*Region, error) {
	region, err := service.repo.GetRegionBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		region.Name = *patch.Name
	}
	if patch.Slug != nil {
		region.Slug = *patch.Slug
	}
	if patch.ExtendRule != nil {
		region.ExtendRule = *patch.ExtendRule
	}
	if patch.Position != nil {
		region.Position = *patch.Position
	}
	if patch.AvailableComponentTypes != nil {
		region.AvailableComponentTypes = patch.AvailableComponentTypes
	}

	if err := service.validateRegion(region); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateRegion(context, region); err != nil {
		return nil, err
	}

	service.logger.Info("region_updated", slog.String("region_id", region.ID), slog.String("slug", region.Slug))
	service.regionsChanged(context)
	return region, nil
}

// DeleteRegion removes the region with slug together with its placements.
func (service *Service) DeleteRegion(context context.Context, slug string) error {
	if err := service.repo.DeleteRegion(context, slug); err != nil {
		return err
	}

	service.logger.Info("region_deleted", slog.String("slug", slug))
	service.regionsChanged(context)
	return nil
}

func (service *Service) validateRegion(region *Region) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, region.Name).MaxLen(FieldName, region.Name, 50)
	validator.Required(FieldSlug, region.Slug).Slug(FieldSlug, region.Slug).MaxLen(FieldSlug, region.Slug, 50)
	validator.Custom(FieldExtendRule, !region.ExtendRule.Valid(), "Must be one of: combine, overwrite")
	validator.Range(FieldPosition, region.Position, MinPosition, MaxPosition)

	for _, kind := range region.AvailableComponentTypes {
		if !service.loaders.Has(kind) {
			validator.Custom(FieldAvailableComponentTypes, true, "Unknown component type: "+kind)
		}
	}

	return validator.Err()
}

// regionsChanged clears the local catalog and notifies the other processes.
func (service *Service) regionsChanged(context context.Context) {
	service.catalog.Clear()

	if service.invalidator == nil {
		return
	}
	if err := service.invalidator.Publish(context); err != nil {
		service.logger.WarnContext(context, "region_invalidation_publish_failed", slog.String("error", err.Error()))
	}
}

// # Layouts

// GetLayout returns the layout with slug, its ancestors attached.
func (service *Service) GetLayout(context context.Context, slug string) (*Layout, error) {
	return service.repo.GetLayoutBySlug(context, slug)
}

// LayoutInput carries the editable fields of a layout. ParentSlug "" detaches the parent.
type LayoutInput struct {
	Name       *string `json:"name"`
	Slug       *string `json:"slug"`
	ParentSlug *string `json:"parent"`
}

/*
CreateLayout validates and persists a new layout.

Parameters:
  - context: context.Context
  - input: LayoutInput

Returns:
  - *Layout: The created layout with its ancestors attached
  - error: Validation or persistence errors
*/
func (service *Service) CreateLayout(context context.Context, input LayoutInput) (*Layout, error) {
	layout := &Layout{ID: uuid.New(), Name: pointer.Val(input.Name), Slug: pointer.Val(input.Slug)}
	if layout.Slug == "" {
		layout.Slug = slug.From(layout.Name)
	}

	if err := validateLayout(layout); err != nil {
		return nil, err
	}

	if parentSlug := pointer.Val(input.ParentSlug); parentSlug != "" {
		parent, err := service.repo.GetLayoutBySlug(context, parentSlug)
		if err != nil {
			return nil, parentNotFound(err)
		}
		layout.ParentID = &parent.ID
		layout.Parent = parent
	}

	if err := service.repo.CreateLayout(context, layout); err != nil {
		return nil, err
	}

	service.logger.Info("layout_created", slog.String("layout_id", layout.ID), slog.String("slug", layout.Slug))
	return layout, nil
}

/*
UpdateLayout applies input to the layout with slug.

Description: Changing the parent reloads the candidate parent with its
ancestors and rejects the change when the edited layout is among them.

Parameters:
  - context: context.Context
  - slug: string
  - input: LayoutInput

Returns:
  - *Layout: The updated layout with its ancestors attached
  - error: Conflict (ErrLayoutCycle), validation or persistence errors
*/
func (service *Service) UpdateLayout(context context.Context, slug string, input LayoutInput) (*Layout, error) {
	layout, err := service.repo.GetLayoutBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		layout.Name = *input.Name
	}
	if input.Slug != nil {
		layout.Slug = *input.Slug
	}

	if err := validateLayout(layout); err != nil {
		return nil, err
	}

	if input.ParentSlug != nil {
		if *input.ParentSlug == "" {
			layout.ParentID = nil
			layout.Parent = nil
		} else {
			parent, err := service.repo.GetLayoutBySlug(context, *input.ParentSlug)
			if err != nil {
				return nil, parentNotFound(err)
			}
			if err := CheckParent(layout, parent); err != nil {
				return nil, cycleConflict(err)
			}
			layout.ParentID = &parent.ID
			layout.Parent = parent
		}
	}

	if err := service.repo.UpdateLayout(context, layout); err != nil {
		if IsCycle(err) {
			return nil, cycleConflict(err)
		}
		return nil, err
	}

	service.logger.Info("layout_updated", slog.String("layout_id", layout.ID), slog.String("slug", layout.Slug))
	return layout, nil
}

func validateLayout(layout *Layout) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, layout.Name).MaxLen(FieldName, layout.Name, 50)
	validator.Required(FieldSlug, layout.Slug).Slug(FieldSlug, layout.Slug).MaxLen(FieldSlug, layout.Slug, 50)
	return validator.Err()
}

// cycleConflict wraps a rejected parent assignment as a 409.
func cycleConflict(err error) error {
	conflict := apperr.Conflict("Layout cannot inherit from itself or one of its descendants")
	conflict.Cause = err
	return conflict
}

// parentNotFound turns a missing parent into a validation error on the parent field.
func parentNotFound(err error) error {
	if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
		return validate.RequiredError(FieldParent, "Parent layout does not exist")
	}
	return err
}

// # Placements

/*
CreatePlacement validates and persists a placement.

Description: Provider and component ids must be UUIDs. The region must exist
in the catalog and accept the component kind, and the kind must have a
registered loader. A missing placement id is generated.

Parameters:
  - context: context.Context
  - placement: *Placement

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreatePlacement(context context.Context, placement *Placement) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldProviderKind, string(placement.ProviderKind), string(ProviderLayout), string(ProviderPage))
	requiredUUID(validator, FieldProviderID, placement.ProviderID)
	requiredUUID(validator, FieldComponentID, placement.ComponentID)
	validator.Range(FieldPosition, placement.Position, MinPosition, MaxPosition)
	validator.Custom(FieldComponentKind, !service.loaders.Has(placement.ComponentKind), "Unknown component type")

	region, ok, err := service.catalog.ByID(context, placement.RegionID)
	if err != nil {
		return err
	}
	if !ok {
		validator.Custom(FieldRegion, true, "Region does not exist")
	} else if !region.Accepts(placement.ComponentKind) {
		validator.Custom(FieldComponentKind, true, "Component type is not available in region "+region.Slug)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if placement.ID == "" {
		placement.ID = uuid.New()
	}

	if err := service.repo.CreatePlacement(context, placement); err != nil {
		return err
	}

	service.logger.Info("placement_created",
		slog.String("placement_id", placement.ID),
		slog.String("region", region.Slug),
		slog.String("component_kind", placement.ComponentKind),
	)
	return nil
}

// requiredUUID reports a missing value once, and a malformed one as not a UUID.
func requiredUUID(validator *validate.Validator, field, value string) {
	if value == "" {
		validator.Required(field, value)
		return
	}
	validator.UUID(field, value)
}

// DeletePlacement removes a placement.
func (service *Service) DeletePlacement(context context.Context, id string) error {
	if err := (&validate.Validator{}).UUID(FieldID, id).Err(); err != nil {
		return err
	}
	if err := service.repo.DeletePlacement(context, id); err != nil {
		return err
	}
	service.logger.Info("placement_deleted", slog.String("placement_id", id))
	return nil
}

// IsCycle reports whether err stems from a rejected parent assignment.
func IsCycle(err error) bool {
	return errors.Is(err, ErrLayoutCycle)
}
