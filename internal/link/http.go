// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mosaic/internal/platform/apperr"
	"github.com/taibuivan/mosaic/internal/platform/respond"
)

// FieldReference is the query parameter carrying the reference to resolve.
const FieldReference = "ref"

// # Error Mapping

// AppError maps link failures to their API error shape. Other errors are returned unchanged.
func AppError(err error) error {
	var appError *apperr.AppError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidReference):
		appError = apperr.ValidationError("Invalid link reference", apperr.FieldError{
			Field:   FieldReference,
			Message: "Must be a URL, an absolute path or a type/id reference",
		})
	case errors.Is(err, ErrResolve):
		appError = apperr.NotFound("Link target")
	case errors.Is(err, ErrReverseResolve):
		appError = apperr.Unprocessable("Object cannot be linked")
	default:
		return err
	}
	appError.Cause = err
	return appError
}

// # Handler Implementation

// Handler exposes the registry over HTTP.
type Handler struct {
	registry *Registry
}

// NewHandler constructs a link [Handler].
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// Routes returns the link endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/resolve", handler.resolve)
	router.Get("/types", handler.types)

	return router
}

type resolveResponse struct {
	Reference  string `json:"reference"`
	Kind       Kind   `json:"kind"`
	ObjectType string `json:"object_type,omitempty"`
	ObjectID   string `json:"object_id,omitempty"`
	URL        string `json:"url"`
}

func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get(FieldReference)

	reference, err := Parse(raw)
	if err != nil {
		respond.Error(writer, request, AppError(err))
		return
	}

	url, err := handler.registry.ResolveReference(request.Context(), reference)
	if err != nil {
		respond.Error(writer, request, AppError(err))
		return
	}

	respond.OK(writer, resolveResponse{
		Reference:  reference.Raw(),
		Kind:       reference.Kind(),
		ObjectType: reference.ObjectType(),
		ObjectID:   reference.ObjectID(),
		URL:        url,
	})
}

func (handler *Handler) types(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.registry.Types())
}
