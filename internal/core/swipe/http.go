// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package swipe

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snapduel/internal/platform/middleware"
	requestutil "github.com/taibuivan/snapduel/internal/platform/request"
	"github.com/taibuivan/snapduel/internal/platform/respond"
)

// Handler implements the HTTP layer for swipe decks.
type Handler struct {
	service *Service
}

// NewHandler constructs a new swipe [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /swipe.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/deck", handler.nextDeck)
	router.With(middleware.RequireAuth).Post("/judgments", handler.recordJudgment)

	return router
}

/*
GET /api/v1/swipe/deck.

Request:
  - size: int (default 10, max 50)
  - exclude: comma-separated photo ids already shown this session (at most MaxExcludeIDs)

Response:
  - 200: Deck
  - 400: More than MaxExcludeIDs exclusions
*/
func (handler *Handler) nextDeck(writer http.ResponseWriter, request *http.Request) {
	size := requestutil.IntQuery(request, "size", DefaultDeckSize)
	exclude, err := requestutil.IDsQuery(request, "exclude", MaxExcludeIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deck, err := handler.service.NextDeck(request.Context(), requestutil.ViewerID(request), size, exclude)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deck)
}

/*
POST /api/v1/swipe/judgments.

Request:
  - Body: {"photo_id": string, "verdict": "like" | "pass"}

Response:
  - 201: Judgment
*/
func (handler *Handler) recordJudgment(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Identity ──
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Decode ──
	var body struct {
		PhotoID string  `json:"photo_id"`
		Verdict Verdict `json:"verdict"`
	}
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Execute ──
	judgment, err := handler.service.RecordJudgment(request.Context(), viewerID, body.PhotoID, body.Verdict)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, judgment)
}
