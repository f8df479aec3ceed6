// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	requestutil "github.com/taibuivan/snapduel/internal/platform/request"
	"github.com/taibuivan/snapduel/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements profile endpoints. They are mounted under /users next to
// the follow and photo-listing routes, so the handler exposes methods instead
// of its own router.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
GetProfile handles GET /api/v1/users/{id}.

Response:
  - 200: Profile
  - 404: Unknown user
*/
func (handler *Handler) GetProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.service.GetProfile(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
UpdateMe handles PATCH /api/v1/users/me.

Request:
  - Body: UpdateProfileInput

Response:
  - 200: Profile
  - 400: Validation failure
*/
func (handler *Handler) UpdateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateProfileInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.UpdateProfile(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
Ban handles PUT /api/v1/users/{id}/ban. Admin only.

Response:
  - 200: Profile
  - 409: Self-ban
*/
func (handler *Handler) Ban(writer http.ResponseWriter, request *http.Request) {
	handler.setBanned(writer, request, true)
}

/*
Unban handles DELETE /api/v1/users/{id}/ban. Admin only.

Response:
  - 200: Profile
*/
func (handler *Handler) Unban(writer http.ResponseWriter, request *http.Request) {
	handler.setBanned(writer, request, false)
}

func (handler *Handler) setBanned(writer http.ResponseWriter, request *http.Request, banned bool) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.SetBanned(request.Context(), actorID, requestutil.Param(request, "id"), banned)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
