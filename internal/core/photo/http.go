// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snapduel/internal/platform/middleware"
	requestutil "github.com/taibuivan/snapduel/internal/platform/request"
	"github.com/taibuivan/snapduel/internal/platform/respond"
	"github.com/taibuivan/snapduel/internal/platform/sec"
	"github.com/taibuivan/snapduel/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the photo catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new photo [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /photos.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public (viewer-aware)
	router.Get("/ranking", handler.ranking)
	router.Get("/{id}", handler.getPhoto)

	// ## Authenticated
	router.With(middleware.RequireAuth).Post("/", handler.upload)

	// ## Moderation
	router.With(middleware.RequireRole(sec.RoleModerator)).Patch("/{id}/status", handler.setStatus)

	return router
}

// # Photo Endpoints

/*
GET /api/v1/photos/ranking.

Request:
  - tag: string (part | title | character, optional)
  - limit: int (default 10, max 50)

Response:
  - 200: []Card
*/
func (handler *Handler) ranking(writer http.ResponseWriter, request *http.Request) {
	tag := request.URL.Query().Get("tag")
	limit := requestutil.IntQuery(request, "limit", DefaultRankingSize)

	cards, err := handler.service.Ranking(request.Context(), requestutil.ViewerID(request), tag, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, cards)
}

/*
GET /api/v1/photos/{id}.

Response:
  - 200: Card (image_url omitted when not viewable)
  - 404: Photo missing or hidden
*/
func (handler *Handler) getPhoto(writer http.ResponseWriter, request *http.Request) {
	card, err := handler.service.Get(request.Context(), requestutil.ViewerID(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}

/*
POST /api/v1/photos.

Request:
  - Body: UploadInput

Response:
  - 201: Photo
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Identity ──
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Decode ──
	var input UploadInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Execute ──
	photo, err := handler.service.Upload(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, photo)
}

/*
PATCH /api/v1/photos/{id}/status.

Request:
  - Body: {"status": "active" | "hidden"}

Response:
  - 204: No Content
*/
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Status Status `json:"status"`
	}
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetStatus(request.Context(), requestutil.Param(request, "id"), body.Status); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/access/resolve.

Request:
  - Body: {"photo_ids": []string}

Response:
  - 200: {"<photo id>": bool, ...}
*/
func (handler *Handler) ResolveAccess(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		PhotoIDs []string `json:"photo_ids"`
	}
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	decisions, err := handler.service.ResolveAccess(request.Context(), requestutil.ViewerID(request), body.PhotoIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, decisions)
}

/*
GET /api/v1/users/{id}/photos.

Request:
  - page, limit: int

Response:
  - 200: Paginated []Card
*/
func (handler *Handler) ListByOwner(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	cards, total, err := handler.service.ListByOwner(request.Context(), requestutil.ViewerID(request), requestutil.Param(request, "id"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, pagination.NewMeta(params, total))
}
