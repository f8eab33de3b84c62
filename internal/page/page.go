// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package page assembles published pages from their layout chain.

A page is the innermost component provider of a render: its placements are
folded after those of its layout ancestors, and request-scoped extras are
folded last. Pages are linkable as "page/<id>".
*/
package page

import (
	"time"

	"github.com/taibuivan/mosaic/internal/hint"
	"github.com/taibuivan/mosaic/internal/layout"
)

// ObjectType is the registry key under which pages are linkable.
const ObjectType = "page"

// Page is a published document rendered inside a layout.
type Page struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	LayoutID    *string   `json:"layout_id"`
	Body        string    `json:"body"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetID returns the page id.
func (page *Page) GetID() string { return page.ID }

// AbsoluteURL returns "/pages/<slug>".
func (page *Page) AbsoluteURL() string { return "/pages/" + page.Slug }

// TemplateHints returns "page-<slug>".
func (page *Page) TemplateHints() []string {
	return []string{hint.Prefixed(ObjectType, page.Slug)}
}

// ComponentProvider returns the stored placements of the page.
func (page *Page) ComponentProvider(placements layout.PlacementRepository) layout.Provider {
	return layout.NewStoredProvider(placements, layout.ProviderPage, page.ID)
}
