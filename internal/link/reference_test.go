// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/taibuivan/mosaic/internal/link"
)

/*
TestParse covers the three reference forms and the failure case.
*/
func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		kind       link.Kind
		objectType string
		objectID   string
	}{
		{"https_url", "https://example.com/a?b=c", link.KindExternalURL, "", ""},
		{"custom_scheme", "ftp://files.example.com", link.KindExternalURL, "", ""},
		{"root_path", "/", link.KindAbsolutePath, "", ""},
		{"nested_path", "/news/2026/", link.KindAbsolutePath, "", ""},
		{"typed_page", "page/123", link.KindTyped, "page", "123"},
		{"typed_hyphen", "news-item/7", link.KindTyped, "news-item", "7"},
		{"typed_id_with_slash", "page/a/b", link.KindTyped, "page", "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reference, err := link.Parse(tt.raw)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, reference.Kind())
			assert.Equal(t, tt.raw, reference.Raw())
			assert.Equal(t, tt.objectType, reference.ObjectType())
			assert.Equal(t, tt.objectID, reference.ObjectID())
		})
	}
}

/*
TestParse_Invalid verifies malformed strings are rejected with ErrInvalidReference.
*/
func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{"", "page", "Page/1", "page/", "://x", "pa_ge/1", "page1/2", "http:/x"} {
		t.Run(raw, func(t *testing.T) {
			_, err := link.Parse(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, link.ErrInvalidReference))
		})
	}
}

/*
TestReference_URL checks that only literal forms expose a URL without resolution.
*/
func TestReference_URL(t *testing.T) {
	url, ok := link.MustParse("/about").URL()
	assert.True(t, ok)
	assert.Equal(t, "/about", url)

	_, ok = link.MustParse("page/1").URL()
	assert.False(t, ok)

	assert.Equal(t, link.MustParse("page/1"), link.Typed("page", "1"))
}

/*
TestParse_Properties checks the grammar against generated inputs.
*/
func TestParse_Properties(t *testing.T) {
	t.Run("urls", func(t *testing.T) {
		rapid.Check(t, func(r *rapid.T) {
			raw := rapid.StringMatching(`[a-z]{1,8}://[a-z0-9./?=]{1,30}`).Draw(r, "url")
			reference, err := link.Parse(raw)
			if err != nil || reference.Kind() != link.KindExternalURL {
				r.Fatalf("expected external url for %q, got %v (%v)", raw, reference.Kind(), err)
			}
		})
	})

	t.Run("paths", func(t *testing.T) {
		rapid.Check(t, func(r *rapid.T) {
			raw := "/" + rapid.StringMatching(`[a-z0-9/:._-]{0,30}`).Draw(r, "path")
			reference, err := link.Parse(raw)
			if err != nil || reference.Kind() != link.KindAbsolutePath {
				r.Fatalf("expected absolute path for %q, got %v (%v)", raw, reference.Kind(), err)
			}
		})
	})

	t.Run("typed", func(t *testing.T) {
		rapid.Check(t, func(r *rapid.T) {
			objectType := rapid.StringMatching(`[-a-z]{1,12}`).Draw(r, "type")
			objectID := rapid.StringMatching(`[a-z0-9-]{1,12}`).Draw(r, "id")

			reference, err := link.Parse(objectType + "/" + objectID)
			if err != nil {
				r.Fatalf("unexpected error: %v", err)
			}
			if reference.Kind() != link.KindTyped ||
				reference.ObjectType() != objectType ||
				reference.ObjectID() != objectID {
				r.Fatalf("got %v %q %q", reference.Kind(), reference.ObjectType(), reference.ObjectID())
			}
		})
	})

	t.Run("no_separator_fails", func(t *testing.T) {
		rapid.Check(t, func(r *rapid.T) {
			raw := rapid.StringMatching(`[A-Za-z0-9 _.-]{0,20}`).Draw(r, "raw")
			if _, err := link.Parse(raw); err == nil {
				r.Fatalf("expected %q to be rejected", raw)
			}
		})
	})
}
