// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCacheCleanupInterval is how often expired resolver entries are purged.
const DefaultCacheCleanupInterval = 10 * time.Minute

// # Cached Resolver

// CachedResolver memoises successful resolutions of a wrapped [Resolver] for ttl.
//
// Failures are never cached, so a target that appears later becomes
// resolvable immediately. Handles and ObjectID pass straight through.
type CachedResolver struct {
	next  Resolver
	cache *gocache.Cache
}

// NewCachedResolver wraps next with an in-memory TTL cache.
func NewCachedResolver(next Resolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		next:  next,
		cache: gocache.New(ttl, DefaultCacheCleanupInterval),
	}
}

// Resolve returns the cached URL or delegates to the wrapped resolver.
func (resolver *CachedResolver) Resolve(context context.Context, objectID string) (string, error) {
	if cached, found := resolver.cache.Get(objectID); found {
		if url, ok := cached.(string); ok {
			return url, nil
		}
	}

	url, err := resolver.next.Resolve(context, objectID)
	if err != nil {
		return "", err
	}

	resolver.cache.SetDefault(objectID, url)
	return url, nil
}

// Handles delegates to the wrapped resolver.
func (resolver *CachedResolver) Handles(object any) bool {
	return resolver.next.Handles(object)
}

// ObjectID delegates to the wrapped resolver.
func (resolver *CachedResolver) ObjectID(object any) (string, error) {
	return resolver.next.ObjectID(object)
}
