// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package component provides the concrete component kinds that editors place into regions.

Kinds:

  - text: a titled HTML body; typed link references inside the body are
    rewritten when rendered.
  - image: an image with alternative text and an optional link.
  - link: a titled link to a URL, path or CMS object.
  - fixed-template: an in-memory component with a fixed template, injected by code.

Every stored kind has a [layout.Loader] registered through [RegisterLoaders].
*/
package component

import (
	"time"

	"github.com/taibuivan/mosaic/internal/link"
)

// # Kind Tags

const (
	KindText          = "text"
	KindImage         = "image"
	KindLink          = "link"
	KindFixedTemplate = "fixed-template"
)

// # Text

// Text is a titled rich-text block.
type Text struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (text *Text) Kind() string             { return KindText }
func (text *Text) TemplateBasename() string { return "text.html" }

// ContextData exposes title and the raw body. Templates pass the body through convertLinks.
func (text *Text) ContextData() map[string]any {
	return map[string]any{
		"id":    text.ID,
		"title": text.Title,
		"body":  text.Body,
	}
}

// # Image

// Image is a picture with an optional link target.
type Image struct {
	ID        string     `json:"id"`
	Src       string     `json:"src"`
	AltText   string     `json:"alt_text"`
	Link      link.Field `json:"link"`
	CreatedAt time.Time  `json:"created_at"`

	// Href is the resolved link target, filled in by the loader. Empty when unset or dangling.
	Href string `json:"href"`
}

func (image *Image) Kind() string             { return KindImage }
func (image *Image) TemplateBasename() string { return "image.html" }

func (image *Image) ContextData() map[string]any {
	return map[string]any{
		"id":   image.ID,
		"src":  image.Src,
		"alt":  image.AltText,
		"href": image.Href,
	}
}

// # Link

// LinkItem is a titled link.
type LinkItem struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Link      link.Field `json:"link"`
	CreatedAt time.Time  `json:"created_at"`

	// Href is the resolved link target, filled in by the loader.
	Href string `json:"href"`
}

func (item *LinkItem) Kind() string             { return KindLink }
func (item *LinkItem) TemplateBasename() string { return "link.html" }

func (item *LinkItem) ContextData() map[string]any {
	return map[string]any{
		"id":    item.ID,
		"title": item.Title,
		"href":  item.Href,
		"raw":   item.Link.Raw,
	}
}

// # Fixed Template

// FixedTemplate renders a fixed template with fixed data.
//
// It is never stored; page views inject it with [layout.InlinePlacement].
type FixedTemplate struct {
	Template string
	Position int
	Data     map[string]any
}

// NewFixedTemplate creates a fixed-template component.
func NewFixedTemplate(template string, position int, data map[string]any) *FixedTemplate {
	if data == nil {
		data = map[string]any{}
	}
	return &FixedTemplate{Template: template, Position: position, Data: data}
}

func (fixed *FixedTemplate) Kind() string             { return KindFixedTemplate }
func (fixed *FixedTemplate) TemplateBasename() string { return fixed.Template }
func (fixed *FixedTemplate) SortPosition() int        { return fixed.Position }

// ContextData returns a copy of the fixed data.
func (fixed *FixedTemplate) ContextData() map[string]any {
	data := make(map[string]any, len(fixed.Data))
	for key, value := range fixed.Data {
		data[key] = value
	}
	return data
}
