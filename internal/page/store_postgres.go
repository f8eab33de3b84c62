// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mosaic/internal/platform/database/schema"
	"github.com/taibuivan/mosaic/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed page store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var pageColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
	schema.ContentPage.ID, schema.ContentPage.Title, schema.ContentPage.Slug,
	schema.ContentPage.LayoutID, schema.ContentPage.Body, schema.ContentPage.IsPublished,
	schema.ContentPage.CreatedAt, schema.ContentPage.UpdatedAt,
)

func scanPage(row pgx.Row) (*Page, error) {
	page := &Page{}
	err := row.Scan(
		&page.ID, &page.Title, &page.Slug, &page.LayoutID, &page.Body,
		&page.IsPublished, &page.CreatedAt, &page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// GetPageBySlug loads a page by its natural key.
func (repository *PostgresRepository) GetPageBySlug(context context.Context, slug string) (*Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		pageColumns, schema.ContentPage.Table, schema.ContentPage.Slug)

	page, err := scanPage(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_page_by_slug")
	}
	return page, nil
}

// GetPageByID loads a page by id.
func (repository *PostgresRepository) GetPageByID(context context.Context, id string) (*Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		pageColumns, schema.ContentPage.Table, schema.ContentPage.ID)

	page, err := scanPage(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_page_by_id")
	}
	return page, nil
}
