// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mosaic/internal/api"
	"github.com/taibuivan/mosaic/internal/layout"
	"github.com/taibuivan/mosaic/internal/layout/layouttest"
	"github.com/taibuivan/mosaic/internal/link"
	"github.com/taibuivan/mosaic/internal/page"
	"github.com/taibuivan/mosaic/internal/platform/config"
	"github.com/taibuivan/mosaic/internal/platform/dberr"
	"github.com/taibuivan/mosaic/internal/platform/sec"
)

// staticVerifier accepts the bearer tokens "admin" and "member".
type staticVerifier struct{}

func (staticVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "admin":
		return &sec.AuthClaims{UserID: "u-admin", Role: string(sec.RoleAdmin)}, nil
	case "member":
		return &sec.AuthClaims{UserID: "u-member", Role: string(sec.RoleMember)}, nil
	}
	return nil, errors.New("invalid token")
}

type noPages struct{}

func (noPages) GetPageBySlug(context.Context, string) (*page.Page, error) {
	return nil, dberr.ErrNotFound
}

func (noPages) GetPageByID(context.Context, string) (*page.Page, error) {
	return nil, dberr.ErrNotFound
}

func newServer(t *testing.T) http.Handler {
	t.Helper()

	registry := link.NewRegistry(nil)
	require.NoError(t, registry.Register(page.ObjectType, page.NewResolver(noPages{})))
	registry.Seal()

	repo := layouttest.NewMemory(&layout.Region{ID: "r-sidebar", Slug: "sidebar", ExtendRule: layout.ExtendCombine})
	catalog := layout.NewRegionCatalog(repo, nil)
	loaders := layouttest.StubLoaders("text")
	layouts := layout.NewService(repo, catalog, loaders, layout.NewLocalInvalidator(catalog), nil)
	pages := page.NewService(noPages{}, repo, repo, catalog, layout.NewComposer(catalog, loaders, nil), "default", nil)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "test"}, nil, staticVerifier{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Link:      link.NewHandler(registry),
		Layout:    layout.NewHandler(layouts),
		Page:      page.NewHandler(pages, nil),
	})
	return server.Handler()
}

/*
TestServer_Routes verifies route mounting and the role gates of the middleware chain.
*/
func TestServer_Routes(t *testing.T) {
	handler := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"ready_without_checks", http.MethodGet, "/ready", "", "", http.StatusOK},
		{"link_types", http.MethodGet, "/api/v1/links/types", "", "", http.StatusOK},
		{"link_resolve_url", http.MethodGet, "/api/v1/links/resolve?ref=/about", "", "", http.StatusOK},
		{"list_regions", http.MethodGet, "/api/v1/regions", "", "", http.StatusOK},
		{"get_region", http.MethodGet, "/api/v1/regions/sidebar", "", "", http.StatusOK},
		{"missing_region", http.MethodGet, "/api/v1/regions/footer", "", "", http.StatusNotFound},
		{"create_region_anonymous", http.MethodPost, "/api/v1/regions", "", `{"name":"Footer"}`, http.StatusUnauthorized},
		{"create_region_member", http.MethodPost, "/api/v1/regions", "member", `{"name":"Footer"}`, http.StatusForbidden},
		{"create_region_admin", http.MethodPost, "/api/v1/regions", "admin", `{"name":"Footer","extend_rule":"overwrite"}`, http.StatusCreated},
		{"bad_token", http.MethodGet, "/api/v1/regions", "forged", "", http.StatusUnauthorized},
		{"missing_page", http.MethodGet, "/api/v1/pages/about/composition", "", "", http.StatusNotFound},
		{"no_html_without_templates", http.MethodGet, "/pages/about", "", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			request.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				request.Header.Set("Authorization", "Bearer "+tt.token)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}
