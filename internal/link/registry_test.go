// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mosaic/internal/link"
)

// article is a minimal linkable record used across the link tests.
type article struct {
	id   string
	slug string
}

func (a *article) GetID() string       { return a.id }
func (a *article) AbsoluteURL() string { return "/articles/" + a.slug }

// articleStore is an in-memory lookup counting calls.
type articleStore struct {
	mu      sync.Mutex
	records map[string]*article
	calls   int
}

func (store *articleStore) find(_ context.Context, id string) (*article, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.calls++

	record, ok := store.records[id]
	if !ok {
		return nil, fmt.Errorf("article %s does not exist", id)
	}
	return record, nil
}

func newArticleStore(records ...*article) *articleStore {
	store := &articleStore{records: make(map[string]*article)}
	for _, record := range records {
		store.records[record.id] = record
	}
	return store
}

func newRegistry(t *testing.T, store *articleStore) *link.Registry {
	t.Helper()
	registry := link.NewRegistry(nil)
	require.NoError(t, registry.Register("article", link.NewRecordResolver(store.find)))
	return registry
}

/*
TestRegistry_RoundTrip verifies reverse and forward resolution agree.
*/
func TestRegistry_RoundTrip(t *testing.T) {
	record := &article{id: "42", slug: "hello"}
	registry := newRegistry(t, newArticleStore(record))

	reference, err := registry.Reverse(record)
	require.NoError(t, err)
	assert.Equal(t, "article/42", reference)

	url, err := registry.Resolve(context.Background(), "article", "42")
	require.NoError(t, err)
	assert.Equal(t, "/articles/hello", url)
}

/*
TestRegistry_ResolveUnregistered verifies unknown types always fail with ResolveError.
*/
func TestRegistry_ResolveUnregistered(t *testing.T) {
	registry := link.NewRegistry(nil)

	for _, id := range []string{"1", "", "anything/else"} {
		_, err := registry.Resolve(context.Background(), "page", id)
		require.Error(t, err)
		assert.True(t, errors.Is(err, link.ErrResolve))

		var resolveErr *link.ResolveError
		require.True(t, errors.As(err, &resolveErr))
		assert.Equal(t, "page", resolveErr.ObjectType)
		assert.Contains(t, resolveErr.Reason, "not registered")
	}
}

/*
TestRegistry_ResolverFailuresAreFolded checks errors and panics surface as ResolveError.
*/
func TestRegistry_ResolverFailuresAreFolded(t *testing.T) {
	cause := errors.New("connection reset")
	registry := link.NewRegistry(nil)
	require.NoError(t, registry.Register("broken", link.ResolverFuncs{
		ResolveFunc: func(context.Context, string) (string, error) { return "", cause },
	}))
	require.NoError(t, registry.Register("panicky", link.ResolverFuncs{
		ResolveFunc: func(context.Context, string) (string, error) { panic("nil map") },
	}))

	_, err := registry.Resolve(context.Background(), "broken", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, link.ErrResolve))
	assert.False(t, errors.Is(err, cause), "cause must not be structurally reachable")
	assert.Contains(t, err.Error(), "connection reset")

	_, err = registry.Resolve(context.Background(), "panicky", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, link.ErrResolve))
	assert.Contains(t, err.Error(), "nil map")
}

/*
TestRegistry_RegisterOverwrites verifies last-write-wins per type.
*/
func TestRegistry_RegisterOverwrites(t *testing.T) {
	registry := link.NewRegistry(nil)
	constant := func(url string) link.Resolver {
		return link.ResolverFuncs{
			ResolveFunc: func(context.Context, string) (string, error) { return url, nil },
		}
	}

	require.NoError(t, registry.Register("page", constant("/first")))
	require.NoError(t, registry.Register("page", constant("/second")))

	url, err := registry.Resolve(context.Background(), "page", "1")
	require.NoError(t, err)
	assert.Equal(t, "/second", url)
	assert.Equal(t, []string{"page"}, registry.Types())
}

/*
TestRegistry_Reverse_NoHandler verifies ReverseResolveError when nothing handles the object.
*/
func TestRegistry_Reverse_NoHandler(t *testing.T) {
	registry := newRegistry(t, newArticleStore())

	_, err := registry.Reverse(struct{ Name string }{"x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, link.ErrReverseResolve))
}

/*
TestRegistry_Seal verifies the startup barrier.
*/
func TestRegistry_Seal(t *testing.T) {
	registry := newRegistry(t, newArticleStore())
	assert.False(t, registry.Sealed())

	registry.Seal()
	registry.Seal()
	assert.True(t, registry.Sealed())

	err := registry.Register("page", link.ResolverFuncs{})
	assert.True(t, errors.Is(err, link.ErrRegistrySealed))
	assert.Equal(t, []string{"article"}, registry.Types())
}

/*
TestRegistry_ObjectPattern verifies the pattern only accepts registered types.
*/
func TestRegistry_ObjectPattern(t *testing.T) {
	empty := link.NewRegistry(nil)
	assert.False(t, empty.ObjectPattern().MatchString("article/1"))

	registry := newRegistry(t, newArticleStore())
	require.NoError(t, registry.Register("article-series", link.ResolverFuncs{}))

	pattern := registry.ObjectPattern()
	assert.Equal(t, []string{"article/1", "article", "1"}, pattern.FindStringSubmatch("article/1"))
	assert.Equal(t, "article-series", pattern.FindStringSubmatch("article-series/9")[1])
	assert.False(t, pattern.MatchString("page/1"))
	assert.False(t, pattern.MatchString("/article/1"))
}

/*
TestRegistry_ConcurrentReads hammers a sealed registry from many goroutines.
*/
func TestRegistry_ConcurrentReads(t *testing.T) {
	record := &article{id: "1", slug: "one"}
	registry := newRegistry(t, newArticleStore(record))
	registry.Seal()

	var wg sync.WaitGroup
	for worker := 0; worker < 16; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if url, err := registry.Resolve(context.Background(), "article", "1"); err != nil || url != "/articles/one" {
					t.Errorf("resolve: %q %v", url, err)
					return
				}
				if ref, err := registry.Reverse(record); err != nil || ref != "article/1" {
					t.Errorf("reverse: %q %v", ref, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
