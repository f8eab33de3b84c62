// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"

	"github.com/taibuivan/mosaic/internal/link"
	"github.com/taibuivan/mosaic/internal/platform/dberr"
)

// Repository loads pages. Missing rows are reported as dberr.ErrNotFound.
type Repository interface {
	GetPageBySlug(context context.Context, slug string) (*Page, error)
	GetPageByID(context context.Context, id string) (*Page, error)
}

// NewResolver resolves "page/<id>" to the page's absolute URL and reverses *Page values.
// Unpublished pages do not resolve.
func NewResolver(repo Repository) link.Resolver {
	return link.NewRecordResolver(func(context context.Context, id string) (*Page, error) {
		page, err := repo.GetPageByID(context, id)
		if err != nil {
			return nil, err
		}
		if !page.IsPublished {
			return nil, dberr.ErrNotFound
		}
		return page, nil
	})
}
