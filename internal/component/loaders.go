// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package component

import (
	"context"

	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/link"
)

/*
RegisterLoaders installs a loader for every stored kind.

Description: Image and link loaders resolve their link field while loading,
so templates receive a plain href. A dangling target yields an empty href,
an unparsable legacy value is passed through as is.

Parameters:
  - loaders: layout.Loaders
  - repo: Repository
  - registry: *link.Registry
*/
func RegisterLoaders(loaders layout.Loaders, repo Repository, registry *link.Registry) {
	loaders.Register(KindText, layout.LoaderFunc(func(context context.Context, id string) (layout.Component, error) {
		text, err := repo.GetText(context, id)
		if err != nil || text == nil {
			return nil, err
		}
		return text, nil
	}))

	loaders.Register(KindImage, layout.LoaderFunc(func(context context.Context, id string) (layout.Component, error) {
		image, err := repo.GetImage(context, id)
		if err != nil || image == nil {
			return nil, err
		}
		image.Href = image.Link.Display(context, registry)
		return image, nil
	}))

	loaders.Register(KindLink, layout.LoaderFunc(func(context context.Context, id string) (layout.Component, error) {
		item, err := repo.GetLink(context, id)
		if err != nil || item == nil {
			return nil, err
		}
		item.Href = item.Link.Display(context, registry)
		return item, nil
	}))
}

// Kinds lists the stored kinds, i.e. the values allowed in a region's available component types.
func Kinds() []string {
	return []string{KindImage, KindLink, KindText}
}
