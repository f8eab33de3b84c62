// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"errors"
	"time"

	"github.com/taibuivan/mosaic/internal/hint"
)

// ErrLayoutCycle is returned when a parent assignment would make a layout its own ancestor.
var ErrLayoutCycle = errors.New("layout: parent chain would contain a cycle")

// # Region

// Region is a named slot of a page into which components are placed.
type Region struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	ExtendRule ExtendRule `json:"extend_rule"`
	Position   int        `json:"position"`

	// AvailableComponentTypes restricts which component kinds may be placed here.
	AvailableComponentTypes []string `json:"available_component_types"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateHints returns "region-<slug>".
func (region Region) TemplateHints() []string {
	return []string{hint.Prefixed("region", region.Slug)}
}

// Accepts reports whether components of kind may be placed in the region.
func (region Region) Accepts(kind string) bool {
	for _, available := range region.AvailableComponentTypes {
		if available == kind {
			return true
		}
	}
	return false
}

// # Layout

// Layout is a node of the layout tree. Children inherit the placements of
// their ancestors, subject to each region's extend rule.
type Layout struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parent_id"`

	// Parent is populated by the repository when the layout is loaded with its chain.
	Parent *Layout `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

/*
ComponentProviders returns the ancestor chain of the layout, outermost first.

Description: The receiver is the last element. The walk follows Parent
pointers iteratively and stops at the first layout seen twice, so a corrupt
chain terminates instead of looping.

Returns:
  - []*Layout: Root ... parent, self
*/
func (layout *Layout) ComponentProviders() []*Layout {
	chain := layout.chain()
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// TemplateHints returns "layout-<slug>" for the layout followed by its ancestors' hints.
func (layout *Layout) TemplateHints() []string {
	chain := layout.chain()
	hints := make([]string, 0, len(chain))
	for _, node := range chain {
		hints = append(hints, hint.Prefixed("layout", node.Slug))
	}
	return hints
}

// chain returns self, parent, grandparent ... with a visited-set guard.
func (layout *Layout) chain() []*Layout {
	chain := make([]*Layout, 0, 4)
	visited := make(map[*Layout]struct{})

	for node := layout; node != nil; node = node.Parent {
		if _, seen := visited[node]; seen {
			break
		}
		visited[node] = struct{}{}
		chain = append(chain, node)
	}

	return chain
}

/*
CheckParent verifies that attaching parent to layout keeps the tree acyclic.

Parameters:
  - layout: *Layout (the child being edited; only its ID is used)
  - parent: *Layout (the candidate parent, loaded with its chain)

Returns:
  - error: ErrLayoutCycle if layout appears in parent's chain, otherwise nil
*/
func CheckParent(layout *Layout, parent *Layout) error {
	if parent == nil {
		return nil
	}

	visited := make(map[string]struct{})
	for node := parent; node != nil; node = node.Parent {
		if node.ID == layout.ID {
			return ErrLayoutCycle
		}
		if _, seen := visited[node.ID]; seen {
			return ErrLayoutCycle
		}
		visited[node.ID] = struct{}{}
	}

	return nil
}

// # Placement

// ProviderKind identifies what kind of object owns a placement.
type ProviderKind string

const (
	ProviderLayout ProviderKind = "layout"
	ProviderPage   ProviderKind = "page"
)

// Placement puts one component into one region on behalf of a provider.
type Placement struct {
	ID            string       `json:"id"`
	ProviderKind  ProviderKind `json:"provider_kind"`
	ProviderID    string       `json:"provider_id"`
	RegionID      string       `json:"region_id"`
	ComponentKind string       `json:"component_kind"`
	ComponentID   string       `json:"component_id"`
	Position      int          `json:"position"`
	Visible       bool         `json:"visible"`
	CreatedAt     time.Time    `json:"created_at"`

	// instance is set for placements built in memory rather than loaded.
	instance Component
}

// Ref returns the reference used to load the placed component.
func (placement Placement) Ref() ComponentRef {
	return ComponentRef{Kind: placement.ComponentKind, ID: placement.ComponentID, instance: placement.instance}
}
