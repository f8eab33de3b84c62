// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/platform/config"
	"github.com/taibuivan/mosaic/internal/platform/redis"
)

func (application *app) regionsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "regions",
		Short: "Manage the region catalog of running servers",
	}

	invalidate := &cobra.Command{
		Use:   "invalidate",
		Short: "Make every server reload its region catalog",
		Long: `Publish an invalidation message on the region channel. Servers subscribed to
REGION_INVALIDATION_CHANNEL drop their cached catalog and rebuild it on the next request.
Use it after editing the region table outside the API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			invalidator, release, err := application.openInvalidator(cmd.Context(), application.logger)
			if err != nil {
				return err
			}
			defer release()

			if err := invalidator.Publish(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(application.stdout, "region invalidation published")
			return err
		},
	}

	command.AddCommand(invalidate)
	return command
}

// openRedisInvalidator connects to Redis. The returned invalidator only publishes.
func openRedisInvalidator(context context.Context, logger *slog.Logger) (layout.Invalidator, func(), error) {
	cache, err := config.LoadSection[config.Cache]()
	if err != nil {
		return nil, nil, err
	}

	client, err := redis.NewClient(context, cache.RedisURL, logger)
	if err != nil {
		return nil, nil, err
	}

	release := func() {
		if err := client.Close(); err != nil {
			logger.Error("redis_close_failed", slog.Any("error", err))
		}
	}
	return layout.NewRedisInvalidator(client, cache.RegionInvalidationChannel, nil, logger), release, nil
}
