// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"net/http"

	requestutil "github.com/taibuivan/snapduel/internal/platform/request"
	"github.com/taibuivan/snapduel/internal/platform/respond"
)

// Handler implements follow endpoints under /users/{id}/follow.
type Handler struct {
	service *Service
}

// NewHandler constructs a new follow [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Follow handles POST /api/v1/users/{id}/follow.

Response:
  - 204: Following
  - 404: Unknown user
  - 409: Self-follow
*/
func (handler *Handler) Follow(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Follow(request.Context(), viewerID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// Unfollow handles DELETE /api/v1/users/{id}/follow.
func (handler *Handler) Unfollow(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unfollow(request.Context(), viewerID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
