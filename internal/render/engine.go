// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render turns page compositions into HTML with html/template.

Templates are addressed by their slash-separated path relative to the
template root ("detail/page.html", "partial/region-sidebar/text.html").
Candidate lists produced by the hint package are resolved to the first
template that exists.

Template functions:

  - renderRegion "<slug>": renders every component of a region.
  - renderComponent <component> <providers...>: renders one component with
    the hints of providers, in order. A provider is a hint provider, a
    component (contributing "component-<kind>") or a list of hints. The
    component template receives the chain as .ParentHints and itself as
    .Component, so nested renders use
    {{renderComponent .child .Component .ParentHints}}.
  - hints <providers...>: composes providers into one hint chain.
  - hintedInclude "<pattern>" <hints> <data>: includes the first existing
    expansion of a "{hint}" pattern.
  - resolveLink "<reference>": resolves a link reference, "" when dangling.
  - convertLinks "<html>": rewrites typed references inside anchors.
*/
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/taibuivan/mosaic/internal/hint"
	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/link"
	"github.com/taibuivan/mosaic/internal/page"
)

// ErrTemplateNotFound is returned when none of the candidate names exists.
var ErrTemplateNotFound = errors.New("render: no template found")

// # Engine

// Engine holds the parsed template set. It is safe for concurrent use.
type Engine struct {
	base     *template.Template
	registry *link.Registry
	logger   *slog.Logger
}

/*
New parses every *.html file of fsys.

Parameters:
  - fsys: fs.FS (template root)
  - registry: *link.Registry used by resolveLink and convertLinks
  - logger: *slog.Logger

Returns:
  - *Engine: The engine
  - error: Read or parse failures
*/
func New(fsys fs.FS, registry *link.Registry, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	base := template.New("").Funcs(placeholderFuncs())

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			return nil
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err := base.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("render: parse %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("templates_loaded", slog.Int("count", len(base.Templates())))
	return &Engine{base: base, registry: registry, logger: logger}, nil
}

// Has reports whether a template with name was parsed.
func (engine *Engine) Has(name string) bool {
	return engine.base.Lookup(name) != nil
}

// Select returns the first existing template of names.
func (engine *Engine) Select(names []string) (string, error) {
	for _, name := range names {
		if engine.Has(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrTemplateNotFound, strings.Join(names, ", "))
}

// # Page Rendering

/*
RenderPage renders composition with the first existing candidate of its template names.

Description: The page template receives page, layout, regions and
ParentHints. Each render works on a private clone of the template set so
that the template functions can be bound to the request context.
*/
func (engine *Engine) RenderPage(context context.Context, writer io.Writer, composition *page.Composition) error {
	name, err := engine.Select(composition.TemplateNames)
	if err != nil {
		return err
	}

	renderer, err := engine.bind(context, composition)
	if err != nil {
		return err
	}

	data := composition.Context()
	data["ParentHints"] = composition.Hints

	return renderer.templates.ExecuteTemplate(writer, name, data)
}

// RenderComponent renders one component with hints, outside a page.
func (engine *Engine) RenderComponent(context context.Context, component layout.Component, hints hint.Provider) (template.HTML, error) {
	renderer, err := engine.bind(context, nil)
	if err != nil {
		return "", err
	}
	return renderer.renderWith(component, hints)
}

// # Bound Renderer

// boundRenderer is a template set whose functions are bound to one render.
type boundRenderer struct {
	engine      *Engine
	context     context.Context
	composition *page.Composition
	templates   *template.Template
}

func (engine *Engine) bind(context context.Context, composition *page.Composition) (*boundRenderer, error) {
	templates, err := engine.base.Clone()
	if err != nil {
		return nil, fmt.Errorf("render: clone templates: %w", err)
	}

	renderer := &boundRenderer{
		engine:      engine,
		context:     context,
		composition: composition,
		templates:   templates,
	}
	templates.Funcs(template.FuncMap{
		"renderRegion":    renderer.renderRegion,
		"renderComponent": renderer.renderComponent,
		"hints":           composeHints,
		"hintedInclude":   renderer.hintedInclude,
		"resolveLink":     renderer.resolveLink,
		"convertLinks":    renderer.convertLinks,
	})
	return renderer, nil
}

func (renderer *boundRenderer) execute(name string, data any) (template.HTML, error) {
	var buffer bytes.Buffer
	if err := renderer.templates.ExecuteTemplate(&buffer, name, data); err != nil {
		return "", err
	}
	return template.HTML(buffer.String()), nil
}

// renderRegion renders the components of the region with slug, in order.
// A region absent from the composition renders as nothing.
func (renderer *boundRenderer) renderRegion(slug string) (template.HTML, error) {
	if renderer.composition == nil {
		return "", nil
	}

	region, ok := renderer.composition.Regions[slug]
	if !ok {
		return "", nil
	}

	hints := renderer.composition.ComponentHints(slug)

	var builder strings.Builder
	for _, component := range region.Components {
		html, err := renderer.renderWith(component, hints)
		if err != nil {
			return "", err
		}
		builder.WriteString(string(html))
	}
	return template.HTML(builder.String()), nil
}

// renderComponent renders component with the hints of providers.
func (renderer *boundRenderer) renderComponent(component layout.Component, providers ...any) (template.HTML, error) {
	hints, err := composeHints(providers...)
	if err != nil {
		return "", err
	}
	return renderer.renderWith(component, hints)
}

// renderWith picks the component's partial template from hints and executes it.
func (renderer *boundRenderer) renderWith(component layout.Component, hints hint.Provider) (template.HTML, error) {
	var hintList []string
	if hints != nil {
		hintList = hints.TemplateHints()
	}

	name, err := renderer.engine.Select(hint.Names(hint.TypePartial, component.TemplateBasename(), hintList))
	if err != nil {
		return "", err
	}

	data := component.ContextData()
	data["ParentHints"] = hints
	data["Component"] = component
	data["Kind"] = component.Kind()

	return renderer.execute(name, data)
}

// hintedInclude executes the first existing expansion of pattern.
func (renderer *boundRenderer) hintedInclude(pattern string, hints hint.Provider, data any) (template.HTML, error) {
	var hintList []string
	if hints != nil {
		hintList = hints.TemplateHints()
	}

	name, err := renderer.engine.Select(hint.Expand([]string{pattern}, hintList))
	if err != nil {
		return "", err
	}
	return renderer.execute(name, data)
}

func (renderer *boundRenderer) resolveLink(raw string) string {
	return link.ResolveString(renderer.context, renderer.engine.registry, raw)
}

func (renderer *boundRenderer) convertLinks(fragment string) (template.HTML, error) {
	converted, err := link.ConvertLinks(renderer.context, renderer.engine.registry, fragment)
	if err != nil {
		return "", err
	}
	return template.HTML(converted), nil
}

// composeHints builds one hint chain from template arguments.
func composeHints(values ...any) (hint.Composite, error) {
	providers := make([]hint.Provider, 0, len(values))
	for _, value := range values {
		switch typed := value.(type) {
		case nil:
		case hint.Provider:
			providers = append(providers, typed)
		case layout.Component:
			providers = append(providers, layout.HintProvider(typed))
		case []string:
			providers = append(providers, hint.Static(typed))
		case string:
			providers = append(providers, hint.Static{typed})
		default:
			return nil, fmt.Errorf("render: %T is not a hint provider", value)
		}
	}
	return hint.Of(providers...), nil
}

// placeholderFuncs declares the function names for parsing. They are replaced before every execution.
func placeholderFuncs() template.FuncMap {
	unbound := errors.New("render: template function used outside a render")
	return template.FuncMap{
		"renderRegion":    func(string) (template.HTML, error) { return "", unbound },
		"renderComponent": func(layout.Component, ...any) (template.HTML, error) { return "", unbound },
		"hints":           composeHints,
		"hintedInclude":   func(string, hint.Provider, any) (template.HTML, error) { return "", unbound },
		"resolveLink":     func(string) string { return "" },
		"convertLinks":    func(string) (template.HTML, error) { return "", unbound },
	}
}
