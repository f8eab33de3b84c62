// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mosaic/internal/link"
	"github.com/taibuivan/mosaic/internal/platform/apperr"
)

/*
TestHandler_Resolve verifies status codes and payloads of the resolve endpoint.
*/
func TestHandler_Resolve(t *testing.T) {
	registry := newRegistry(t, newArticleStore(&article{id: "1", slug: "hello"}))
	router := link.NewHandler(registry).Routes()

	tests := []struct {
		name   string
		ref    string
		status int
		url    string
		kind   string
	}{
		{"typed", "article/1", http.StatusOK, "/articles/hello", "object"},
		{"external", "https://example.com/x", http.StatusOK, "https://example.com/x", "url"},
		{"path", "/about", http.StatusOK, "/about", "path"},
		{"dangling", "article/2", http.StatusNotFound, "", ""},
		{"unregistered", "video/1", http.StatusNotFound, "", ""},
		{"malformed", "not a link", http.StatusBadRequest, "", ""},
		{"empty", "", http.StatusBadRequest, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/resolve?ref="+url.QueryEscape(tt.ref), nil)
			router.ServeHTTP(recorder, request)

			require.Equal(t, tt.status, recorder.Code)
			if tt.status != http.StatusOK {
				return
			}

			var body struct {
				Data struct {
					Kind string `json:"kind"`
					URL  string `json:"url"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, tt.url, body.Data.URL)
			assert.Equal(t, tt.kind, body.Data.Kind)
		})
	}
}

/*
TestHandler_Types lists registered object types.
*/
func TestHandler_Types(t *testing.T) {
	registry := newRegistry(t, newArticleStore())
	recorder := httptest.NewRecorder()
	link.NewHandler(registry).Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/types", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":["article"]}`, recorder.Body.String())
}

/*
TestAppError maps each link failure to its HTTP status.
*/
func TestAppError(t *testing.T) {
	_, parseErr := link.Parse("::")
	registry := newRegistry(t, newArticleStore())
	_, reverseErr := registry.Reverse(struct{}{})
	other := errors.New("boom")

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid_reference", parseErr, http.StatusBadRequest},
		{"resolve", &link.ResolveError{ObjectType: "article", ObjectID: "1"}, http.StatusNotFound},
		{"reverse", reverseErr, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := apperr.As(link.AppError(tt.err))
			require.NotNil(t, mapped)
			assert.Equal(t, tt.status, mapped.HTTPStatus)
			assert.ErrorIs(t, mapped, tt.err)
		})
	}

	assert.Same(t, other, link.AppError(other))
	assert.NoError(t, link.AppError(nil))
}
