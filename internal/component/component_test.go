// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package component_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mosaic/internal/component"
	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/link"
)

type memoryRepository struct {
	texts  map[string]*component.Text
	images map[string]*component.Image
	links  map[string]*component.LinkItem
	err    error
}

func (repo *memoryRepository) GetText(_ context.Context, id string) (*component.Text, error) {
	if repo.err != nil {
		return nil, repo.err
	}
	return repo.texts[id], nil
}

func (repo *memoryRepository) GetImage(_ context.Context, id string) (*component.Image, error) {
	if repo.err != nil {
		return nil, repo.err
	}
	if image, ok := repo.images[id]; ok {
		clone := *image
		return &clone, nil
	}
	return nil, nil
}

func (repo *memoryRepository) GetLink(_ context.Context, id string) (*component.LinkItem, error) {
	if repo.err != nil {
		return nil, repo.err
	}
	if item, ok := repo.links[id]; ok {
		clone := *item
		return &clone, nil
	}
	return nil, nil
}

func newRegistry(t *testing.T) *link.Registry {
	t.Helper()
	registry := link.NewRegistry(nil)
	require.NoError(t, registry.Register("page", link.ResolverFuncs{
		ResolveFunc: func(_ context.Context, id string) (string, error) {
			if id == "7" {
				return "/pages/about", nil
			}
			return "", errors.New("no such page")
		},
	}))
	registry.Seal()
	return registry
}

/*
TestRegisterLoaders verifies each stored kind loads and resolves its link.
*/
func TestRegisterLoaders(t *testing.T) {
	repo := &memoryRepository{
		texts: map[string]*component.Text{"t1": {ID: "t1", Title: "Hello", Body: "<p>hi</p>"}},
		images: map[string]*component.Image{
			"i1": {ID: "i1", Src: "/img/a.png", AltText: "A", Link: link.NewField("page/7")},
			"i2": {ID: "i2", Src: "/img/b.png", Link: link.NewField("page/99")},
		},
		links: map[string]*component.LinkItem{
			"l1": {ID: "l1", Title: "Docs", Link: link.NewField("https://example.com/docs")},
			"l2": {ID: "l2", Title: "Legacy", Link: link.NewField("not a link")},
		},
	}
	loaders := layout.Loaders{}
	component.RegisterLoaders(loaders, repo, newRegistry(t))
	ctx := context.Background()

	assert.Equal(t, []string{"image", "link", "text"}, loaders.Kinds())
	assert.ElementsMatch(t, component.Kinds(), loaders.Kinds())

	tests := []struct {
		name string
		kind string
		id   string
		href string
	}{
		{"image_with_resolved_link", component.KindImage, "i1", "/pages/about"},
		{"image_with_dangling_link", component.KindImage, "i2", ""},
		{"link_to_url", component.KindLink, "l1", "https://example.com/docs"},
		{"legacy_value_passed_through", component.KindLink, "l2", "not a link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := loaders[tt.kind].Load(ctx, tt.id)
			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, tt.kind, loaded.Kind())
			assert.Equal(t, tt.href, loaded.ContextData()["href"])
		})
	}

	text, err := loaders[component.KindText].Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "text.html", text.TemplateBasename())
	assert.Equal(t, "<p>hi</p>", text.ContextData()["body"])

	for _, kind := range component.Kinds() {
		loaded, err := loaders[kind].Load(ctx, "absent")
		assert.NoError(t, err)
		assert.Nil(t, loaded, "missing %s component", kind)
	}

	repo.err = errors.New("connection reset")
	_, err = loaders[component.KindText].Load(ctx, "t1")
	assert.ErrorIs(t, err, repo.err)
}

/*
TestFixedTemplate verifies the template name and that data is copied.
*/
func TestFixedTemplate(t *testing.T) {
	fixed := component.NewFixedTemplate("breadcrumbs.html", 3, map[string]any{"trail": "home"})

	assert.Equal(t, component.KindFixedTemplate, fixed.Kind())
	assert.Equal(t, "breadcrumbs.html", fixed.TemplateBasename())

	data := fixed.ContextData()
	data["trail"] = "changed"
	assert.Equal(t, "home", fixed.ContextData()["trail"])

	assert.NotNil(t, component.NewFixedTemplate("empty.html", 0, nil).ContextData())
}
