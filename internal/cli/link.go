// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/mosaic/internal/link"
	"github.com/taibuivan/mosaic/internal/page"
	"github.com/taibuivan/mosaic/internal/platform/config"
	"github.com/taibuivan/mosaic/internal/platform/postgres"
)

type parsedReference struct {
	Reference  string    `json:"reference"`
	Kind       link.Kind `json:"kind"`
	ObjectType string    `json:"object_type,omitempty"`
	ObjectID   string    `json:"object_id,omitempty"`
	URL        string    `json:"url,omitempty"`
}

func (application *app) linkCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "link",
		Short: "Inspect link references",
	}

	parse := &cobra.Command{
		Use:   "parse <reference>",
		Short: "Classify a reference without touching storage",
		Long: `Classify a reference as an external URL, an absolute path or a typed object reference.

Examples:
  mosaicctl link parse https://example.com/docs
  mosaicctl link parse /about
  mosaicctl link parse page/0190f1b6-6a4e-7c5e-9d2a-1f2e3d4c5b6a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reference, err := link.Parse(args[0])
			if err != nil {
				return err
			}

			result := parsedReference{
				Reference:  reference.Raw(),
				Kind:       reference.Kind(),
				ObjectType: reference.ObjectType(),
				ObjectID:   reference.ObjectID(),
			}
			if url, ok := reference.URL(); ok {
				result.URL = url
			}

			encoder := json.NewEncoder(application.stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}

	resolve := &cobra.Command{
		Use:   "resolve <reference>",
		Short: "Resolve a reference to its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reference, err := link.Parse(args[0])
			if err != nil {
				return err
			}

			registry, release, err := application.openRegistry(cmd.Context(), application.logger)
			if err != nil {
				return err
			}
			defer release()

			url, err := registry.ResolveReference(cmd.Context(), reference)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(application.stdout, url)
			return err
		},
	}

	command.AddCommand(parse, resolve)
	return command
}

// openPostgresRegistry registers the page resolver over a fresh pool.
func openPostgresRegistry(context context.Context, logger *slog.Logger) (*link.Registry, func(), error) {
	database, err := config.LoadSection[config.Database]()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(context, database.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}

	registry := link.NewRegistry(logger)
	if err := registry.Register(page.ObjectType, page.NewResolver(page.NewPostgresRepository(pool))); err != nil {
		pool.Close()
		return nil, nil, err
	}
	registry.Seal()

	return registry, pool.Close, nil
}
