// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads path parameters, query values, JSON bodies and the
viewer identity from an incoming request, mapping failures to apperr values.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/ctxutil"
	"github.com/taibuivan/snapduel/internal/platform/validate"
	"github.com/taibuivan/snapduel/pkg/query"
)

// maxBodyBytes caps JSON bodies; the largest legitimate one is an access
// resolution batch of photo ids.
const maxBodyBytes = 256 << 10

// ErrBodyTooLarge is returned when a body exceeds the cap.
var ErrBodyTooLarge = apperr.ValidationError("Request body too large")

/*
DecodeJSON decodes exactly one JSON value from the body into target.

Returns:
  - error: ErrBodyTooLarge over the cap, validate.ErrInvalidJSON for empty,
    malformed or trailing input
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))

	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return validate.ErrInvalidJSON
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}

	return nil
}

// Param returns the chi path parameter name.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntQuery parses an integer query value, returning fallback when it is
// absent or malformed. Range checks belong to the service.
func IntQuery(request *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(request.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return value
}

// IDsQuery parses a comma-separated identifier list, see [query.IDs]. More
// than limit distinct ids is a validation error, never a truncation.
func IDsQuery(request *http.Request, name string, limit int) ([]string, error) {
	ids, ok := query.IDs(request.URL.Query().Get(name), limit)
	if !ok {
		return nil, validate.RequiredError(name, fmt.Sprintf("At most %d ids", limit))
	}
	return ids, nil
}

// ViewerID returns the authenticated user id, or nil for anonymous requests.
func ViewerID(request *http.Request) *string {
	return ctxutil.ViewerID(request.Context())
}

// RequiredUserID returns the authenticated user id or an Unauthorized error.
func RequiredUserID(request *http.Request) (string, error) {
	viewer := ViewerID(request)
	if viewer == nil {
		return "", apperr.Unauthorized("Authentication required")
	}
	return *viewer, nil
}
