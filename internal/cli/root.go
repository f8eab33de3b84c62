// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements the mosaicctl command tree.

Every command reads its settings from the same environment variables as the
server (see package config) and only loads the section it needs, so that
for example "migrate up" works without Redis or signing keys.

Commands:

  - migrate up | down --steps N | version
  - link parse <reference>
  - link resolve <reference>
  - regions invalidate
  - token issue --user <id> --role <role>
*/
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/link"
	"github.com/taibuivan/mosaic/internal/platform/constants"
)

// RegistryOpener builds a sealed link registry and returns its release function.
type RegistryOpener func(context context.Context, logger *slog.Logger) (*link.Registry, func(), error)

// InvalidatorOpener connects the region invalidation channel and returns its release function.
type InvalidatorOpener func(context context.Context, logger *slog.Logger) (layout.Invalidator, func(), error)

// app carries the writers and backends shared by all commands.
type app struct {
	stdout          io.Writer
	logger          *slog.Logger
	openRegistry    RegistryOpener
	openInvalidator InvalidatorOpener
}

// Option overrides a backend of the command tree.
type Option func(*app)

// WithRegistry replaces the Postgres backed link registry.
func WithRegistry(open RegistryOpener) Option {
	return func(application *app) { application.openRegistry = open }
}

// WithInvalidator replaces the Redis backed region invalidator.
func WithInvalidator(open InvalidatorOpener) Option {
	return func(application *app) { application.openInvalidator = open }
}

/*
NewRootCommand builds the mosaicctl command tree.

Parameters:
  - version: string reported by --version
  - stdout: io.Writer for command results
  - stderr: io.Writer for structured logs
  - options: backend overrides

Returns:
  - *cobra.Command: The root command
*/
func NewRootCommand(version string, stdout, stderr io.Writer, options ...Option) *cobra.Command {
	application := &app{
		stdout:          stdout,
		logger:          slog.New(slog.NewJSONHandler(stderr, nil)).With(slog.String(constants.FieldApp, "mosaicctl")),
		openRegistry:    openPostgresRegistry,
		openInvalidator: openRedisInvalidator,
	}
	for _, option := range options {
		option(application)
	}

	root := &cobra.Command{
		Use:          "mosaicctl",
		Short:        "Operate a Mosaic deployment",
		Long:         `mosaicctl runs schema migrations, inspects link references, invalidates region caches and issues editor tokens.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		application.migrateCommand(),
		application.linkCommand(),
		application.regionsCommand(),
		application.tokenCommand(),
	)
	return root
}
