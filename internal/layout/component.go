// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"sort"

	"github.com/taibuivan/mosaic/internal/hint"
)

// # Component Contract

// Component is a renderable unit placed in a region.
type Component interface {
	// Kind is the stored type tag, e.g. "text" or "image".
	Kind() string

	// TemplateBasename is the file name looked up under each hint directory.
	TemplateBasename() string

	// ContextData is exposed to the component's template.
	ContextData() map[string]any
}

// ComponentHints returns "component-<kind>" for component.
func ComponentHints(component Component) []string {
	return []string{hint.Prefixed("component", component.Kind())}
}

// HintProvider adapts component to [hint.Provider]. A component that already
// provides hints is returned as is.
func HintProvider(component Component) hint.Provider {
	if provider, ok := component.(hint.Provider); ok {
		return provider
	}
	return hint.Func(func() []string { return ComponentHints(component) })
}

// # Loaders

// Loader loads components of one kind by id.
//
// A component that no longer exists is reported as (nil, nil); errors are
// reserved for storage failures.
type Loader interface {
	Load(context context.Context, id string) (Component, error)
}

// LoaderFunc adapts a function to [Loader].
type LoaderFunc func(context context.Context, id string) (Component, error)

// Load calls the function.
func (fn LoaderFunc) Load(context context.Context, id string) (Component, error) {
	return fn(context, id)
}

// Loaders maps stored kind tags to the loader of that kind.
//
// The table is filled during startup and only read afterwards.
type Loaders map[string]Loader

// Register installs loader for kind, replacing any previous entry.
func (loaders Loaders) Register(kind string, loader Loader) {
	loaders[kind] = loader
}

// Kinds returns the registered kind tags, sorted.
func (loaders Loaders) Kinds() []string {
	kinds := make([]string, 0, len(loaders))
	for kind := range loaders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Has reports whether kind has a loader.
func (loaders Loaders) Has(kind string) bool {
	_, ok := loaders[kind]
	return ok
}

// # Component References

// ComponentRef points at a stored component through its kind tag and id.
type ComponentRef struct {
	Kind string
	ID   string

	instance Component
}

// Resolve loads the concrete component. Unknown kinds and missing rows yield (nil, nil).
func (ref ComponentRef) Resolve(context context.Context, loaders Loaders) (Component, error) {
	if ref.instance != nil {
		return ref.instance, nil
	}

	loader, ok := loaders[ref.Kind]
	if !ok {
		return nil, nil
	}

	return loader.Load(context, ref.ID)
}

// InlinePlacement places an in-memory component, bypassing loaders.
//
// Page views use it for components injected by code rather than by editors.
func InlinePlacement(regionID string, position int, component Component) Placement {
	return Placement{
		RegionID:      regionID,
		ComponentKind: component.Kind(),
		Position:      position,
		Visible:       true,
		instance:      component,
	}
}
