// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"sync"
)

// # Link Value

// Link is a lazily-resolved reference.
//
// The resolved URL is cached for the lifetime of the Link; there is no
// invalidation. A Link is safe for concurrent use.
type Link struct {
	reference Reference
	registry  *Registry

	mu       sync.Mutex
	resolved bool
	url      string
}

// New wraps reference. URL and path references are resolved immediately;
// typed references are resolved through registry on first use.
func New(registry *Registry, reference Reference) *Link {
	link := &Link{reference: reference, registry: registry}
	if url, ok := reference.URL(); ok {
		link.url = url
		link.resolved = true
	}
	return link
}

// FromString parses raw and wraps the result, see [New].
func FromString(registry *Registry, raw string) (*Link, error) {
	reference, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return New(registry, reference), nil
}

// Reference returns the wrapped reference.
func (link *Link) Reference() Reference { return link.reference }

// String returns the raw reference text.
func (link *Link) String() string { return link.reference.Raw() }

// Equal reports whether both links wrap the same reference, ignoring cache state.
func (link *Link) Equal(other *Link) bool {
	if link == nil || other == nil {
		return link == other
	}
	return link.reference == other.reference
}

// Resolve returns the target URL, caching it on success.
// Resolution failures are returned as [*ResolveError] and are not cached.
func (link *Link) Resolve(context context.Context) (string, error) {
	link.mu.Lock()
	defer link.mu.Unlock()

	if link.resolved {
		return link.url, nil
	}

	if link.registry == nil {
		return "", &ResolveError{
			ObjectType: link.reference.ObjectType(),
			ObjectID:   link.reference.ObjectID(),
			Reason:     "no registry bound to link",
		}
	}

	url, err := link.registry.Resolve(context, link.reference.ObjectType(), link.reference.ObjectID())
	if err != nil {
		return "", err
	}

	link.url = url
	link.resolved = true
	return url, nil
}

// URL returns the target URL, or "" when resolution fails.
// Use [Link.Resolve] when the failure reason matters.
func (link *Link) URL(context context.Context) string {
	url, err := link.Resolve(context)
	if err != nil {
		return ""
	}
	return url
}

// Exists reports whether the link points at something resolvable. It never fails.
func (link *Link) Exists(context context.Context) bool {
	_, err := link.Resolve(context)
	return err == nil
}

// # Template Helper

// ResolveString resolves raw in one step for display purposes.
//
// Malformed input and failed resolutions both yield "".
func ResolveString(context context.Context, registry *Registry, raw string) string {
	reference, err := Parse(raw)
	if err != nil {
		return ""
	}

	url, err := registry.ResolveReference(context, reference)
	if err != nil {
		return ""
	}
	return url
}
