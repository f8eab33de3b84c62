// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package hint implements cascading template hints.

A hint is a short string ("layout-home", "region-sidebar") contributed by an
object taking part in a render. Hints are expanded into an ordered list of
candidate template names; the renderer picks the first one that exists. The
more specific the provider, the earlier its hints appear.

Hints are recomputed on every call. Nothing here is cached.
*/
package hint

import (
	"path"
	"strings"

	"github.com/taibuivan/mosaic/pkg/pointer"
)

// Placeholder is substituted by each hint when expanding name patterns.
const Placeholder = "{hint}"

// # Provider Contract

// Provider contributes an ordered list of template hints.
type Provider interface {
	TemplateHints() []string
}

// Func adapts a plain function to [Provider].
type Func func() []string

// TemplateHints calls the function.
func (fn Func) TemplateHints() []string { return fn() }

// Static is a fixed list of hints.
type Static []string

// TemplateHints returns a copy of the list.
func (static Static) TemplateHints() []string {
	return append([]string(nil), static...)
}

// # Composition

// Composite concatenates the hints of its providers in order.
//
// Duplicates are kept and nil entries are skipped, so a page without a layout
// can pass a nil layout provider unchanged.
type Composite []Provider

// TemplateHints flattens every provider's hints.
func (composite Composite) TemplateHints() []string {
	hints := make([]string, 0)
	for _, provider := range composite {
		if pointer.IsNil(provider) {
			continue
		}
		hints = append(hints, provider.TemplateHints()...)
	}
	return hints
}

// Of builds a [Composite], dropping nil providers up front.
func Of(providers ...Provider) Composite {
	composite := make(Composite, 0, len(providers))
	for _, provider := range providers {
		if !pointer.IsNil(provider) {
			composite = append(composite, provider)
		}
	}
	return composite
}

// # Expansion

/*
Expand substitutes every hint into every pattern.

Description: Iteration is pattern-major: all hints of the first pattern come
before any hint of the second. Patterns without the placeholder are emitted
once, in place, regardless of the hints.

Parameters:
  - patterns: []string (e.g. "nav/{hint}.html")
  - hints: []string

Returns:
  - []string: Candidate names, most specific first
*/
func Expand(patterns []string, hints []string) []string {
	names := make([]string, 0, len(patterns)*max(len(hints), 1))
	for _, pattern := range patterns {
		if !strings.Contains(pattern, Placeholder) {
			names = append(names, pattern)
			continue
		}
		for _, h := range hints {
			names = append(names, strings.ReplaceAll(pattern, Placeholder, h))
		}
	}
	return names
}

// Prefixed builds a hint of the form "<prefix>-<value>".
func Prefixed(prefix, value string) string {
	return prefix + "-" + value
}

// # Template Names

// Template types used as the top-level directory of candidate names.
const (
	TypePartial = "partial"
	TypeDetail  = "detail"
)

// Names returns the candidate template names for a renderable.
//
// For type "partial", basename "text.html" and hints [a, b] the result is
// partial/a/text.html, partial/b/text.html, partial/text.html.
func Names(templateType, basename string, hints []string) []string {
	names := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		names = append(names, path.Join(templateType, h, basename))
	}
	return append(names, path.Join(templateType, basename))
}
