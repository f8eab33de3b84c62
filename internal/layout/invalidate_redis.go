// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Invalidator tells every process that the region table changed.
type Invalidator interface {
	Publish(context context.Context) error
}

// # Redis Invalidation

// RedisInvalidator broadcasts region changes over a Redis pub/sub channel and
// clears the local [RegionCatalog] whenever a message arrives.
type RedisInvalidator struct {
	client  *redis.Client
	channel string
	catalog *RegionCatalog
	logger  *slog.Logger
}

// NewRedisInvalidator creates an invalidator publishing on channel.
func NewRedisInvalidator(client *redis.Client, channel string, catalog *RegionCatalog, logger *slog.Logger) *RedisInvalidator {
	return &RedisInvalidator{client: client, channel: channel, catalog: catalog, logger: logger}
}

/*
Publish announces a region change to all subscribers.

Parameters:
  - context: context.Context

Returns:
  - error: Redis failures
*/
func (invalidator *RedisInvalidator) Publish(context context.Context) error {
	if err := invalidator.client.Publish(context, invalidator.channel, "regions").Err(); err != nil {
		return fmt.Errorf("redis_region_invalidate_failed: %w", err)
	}
	return nil
}

/*
Listen subscribes to the channel and clears the catalog on every message.

Description: Blocks until context is cancelled or the subscription channel
closes. Intended to run in its own goroutine for the lifetime of the process.

Parameters:
  - context: context.Context

Returns:
  - error: Subscription failures; nil on cancellation
*/
func (invalidator *RedisInvalidator) Listen(context context.Context) error {
	subscription := invalidator.client.Subscribe(context, invalidator.channel)
	defer subscription.Close()

	// Wait for the subscription to be confirmed before consuming.
	if _, err := subscription.Receive(context); err != nil {
		if context.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis_region_subscribe_failed: %w", err)
	}

	invalidator.logger.Info("region_invalidation_listening", slog.String("channel", invalidator.channel))

	messages := subscription.Channel()
	for {
		select {
		case <-context.Done():
			return nil
		case _, ok := <-messages:
			if !ok {
				return nil
			}
			invalidator.catalog.Clear()
			invalidator.logger.Debug("region_catalog_cleared", slog.String("channel", invalidator.channel))
		}
	}
}

// # Local Invalidation

// LocalInvalidator clears a single in-process catalog. Used when Redis is not configured and in tests.
type LocalInvalidator struct {
	catalog *RegionCatalog
}

// NewLocalInvalidator wraps catalog.
func NewLocalInvalidator(catalog *RegionCatalog) *LocalInvalidator {
	return &LocalInvalidator{catalog: catalog}
}

// Publish clears the catalog.
func (invalidator *LocalInvalidator) Publish(context.Context) error {
	invalidator.catalog.Clear()
	return nil
}
