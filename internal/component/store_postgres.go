// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package component

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mosaic/internal/platform/database/schema"
	"github.com/taibuivan/mosaic/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the content schema.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed component store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// missing folds pgx.ErrNoRows into the (nil, nil) loader contract.
func missing(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return dberr.Wrap(err, action)
}

// GetText loads a text component.
func (repository *PostgresRepository) GetText(context context.Context, id string) (*Text, error) {
	table := schema.ContentTextComponent
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Title, table.Body, table.CreatedAt, table.Table, table.ID)

	text := &Text{}
	err := repository.db.QueryRow(context, query, id).Scan(&text.ID, &text.Title, &text.Body, &text.CreatedAt)
	if err != nil {
		return nil, missing(err, "get_text_component")
	}
	return text, nil
}

// GetImage loads an image component.
func (repository *PostgresRepository) GetImage(context context.Context, id string) (*Image, error) {
	table := schema.ContentImageComponent
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Src, table.AltText, table.Link, table.CreatedAt, table.Table, table.ID)

	image := &Image{}
	err := repository.db.QueryRow(context, query, id).Scan(&image.ID, &image.Src, &image.AltText, &image.Link, &image.CreatedAt)
	if err != nil {
		return nil, missing(err, "get_image_component")
	}
	return image, nil
}

// GetLink loads a link component.
func (repository *PostgresRepository) GetLink(context context.Context, id string) (*LinkItem, error) {
	table := schema.ContentLinkComponent
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Title, table.Link, table.CreatedAt, table.Table, table.ID)

	item := &LinkItem{}
	err := repository.db.QueryRow(context, query, id).Scan(&item.ID, &item.Title, &item.Link, &item.CreatedAt)
	if err != nil {
		return nil, missing(err, "get_link_component")
	}
	return item, nil
}
