// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// # Registry

// Registry maps object types to their [Resolver].
//
// # Lifecycle
//
// A Registry is created once per process, populated during startup and then
// sealed with [Registry.Seal] before the first request is served. After that
// it is read-only and safe for concurrent use without coordination.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
	order     []string
	sealed    bool
	logger    *slog.Logger
}

// NewRegistry constructs an empty, unsealed [Registry].
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		resolvers: make(map[string]Resolver),
		logger:    logger,
	}
}

// Register installs resolver for objectType, replacing any previous one.
//
// Existing references to objectType are not re-validated. It fails with
// [ErrRegistrySealed] once the registry has been sealed.
func (registry *Registry) Register(objectType string, resolver Resolver) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.sealed {
		return fmt.Errorf("%w: cannot register %q", ErrRegistrySealed, objectType)
	}

	if _, exists := registry.resolvers[objectType]; !exists {
		registry.order = append(registry.order, objectType)
	}
	registry.resolvers[objectType] = resolver
	return nil
}

// Seal ends the registration phase. It is idempotent.
func (registry *Registry) Seal() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.sealed = true
}

// Sealed reports whether [Registry.Seal] has been called.
func (registry *Registry) Sealed() bool {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.sealed
}

// Types returns the registered object types in sorted order.
func (registry *Registry) Types() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	types := slices.Clone(registry.order)
	slices.Sort(types)
	return types
}

// # Forward Resolution

/*
Resolve returns the URL for objectID of the given objectType.

Description: Any failure, whether the type is unknown, the resolver returns an
error or the resolver panics, is reported as a [*ResolveError]. Callers get one
error surface; the original message is kept in the Reason field.

Parameters:
  - context: context.Context
  - objectType: string (registered type key)
  - objectID: string

Returns:
  - string: The resolved URL
  - error: *ResolveError
*/
func (registry *Registry) Resolve(context context.Context, objectType, objectID string) (url string, err error) {
	registry.mu.RLock()
	resolver, ok := registry.resolvers[objectType]
	registry.mu.RUnlock()

	if !ok {
		return "", &ResolveError{
			ObjectType: objectType,
			ObjectID:   objectID,
			Reason:     fmt.Sprintf("module not registered (%s)", objectType),
		}
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			url, err = "", registry.fold(context, objectType, objectID, fmt.Sprint(recovered))
		}
	}()

	url, err = resolver.Resolve(context, objectID)
	if err != nil {
		return "", registry.fold(context, objectType, objectID, err.Error())
	}

	return url, nil
}

// ResolveReference resolves any reference form.
// URL and path references are returned as is, typed references go through [Registry.Resolve].
func (registry *Registry) ResolveReference(context context.Context, reference Reference) (string, error) {
	if url, ok := reference.URL(); ok {
		return url, nil
	}
	return registry.Resolve(context, reference.ObjectType(), reference.ObjectID())
}

// fold logs the resolver failure and wraps it as a [*ResolveError].
func (registry *Registry) fold(context context.Context, objectType, objectID, reason string) error {
	registry.logger.DebugContext(context, "link_resolve_failed",
		slog.String("object_type", objectType),
		slog.String("object_id", objectID),
		slog.String("reason", reason),
	)

	return &ResolveError{
		ObjectType: objectType,
		ObjectID:   objectID,
		Reason:     "module could not handle resolve: " + reason,
	}
}

// # Reverse Resolution

// Reverse returns the "type/id" reference string for object.
//
// The first resolver whose Handles predicate accepts object wins. Resolvers are
// consulted in registration order, but callers must not rely on that.
func (registry *Registry) Reverse(object any) (string, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, objectType := range registry.order {
		resolver := registry.resolvers[objectType]
		if !resolver.Handles(object) {
			continue
		}

		objectID, err := resolver.ObjectID(object)
		if err != nil {
			return "", fmt.Errorf("link: reverse %s: %w", objectType, err)
		}
		return objectType + TypeIDSeparator + objectID, nil
	}

	return "", &ReverseResolveError{Object: object}
}

// # Registered Type Pattern

// ObjectPattern returns an anchored pattern accepting only typed references
// whose type is currently registered. Submatch 1 is the type, 2 the id.
//
// When nothing is registered the pattern matches nothing.
func (registry *Registry) ObjectPattern() *regexp.Regexp {
	types := registry.Types()
	if len(types) == 0 {
		return regexp.MustCompile(`[^\s\S]`)
	}

	quoted := make([]string, len(types))
	for i, objectType := range types {
		quoted[i] = regexp.QuoteMeta(objectType)
	}

	return regexp.MustCompile(`^(` + strings.Join(quoted, "|") + `)/(.+)$`)
}
