// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package battle

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/snapduel/internal/platform/request"
	"github.com/taibuivan/snapduel/internal/platform/respond"
)

// Handler implements the HTTP layer for battles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new battle [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /battles.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/next", handler.nextPair)
	router.Post("/", handler.recordComparison)

	return router
}

// pairResponse renders a pair or the empty marker.
type pairResponse struct {
	Pair
	Empty bool `json:"empty"`
}

/*
GET /api/v1/battles/next.

Response:
  - 200: {"a": Photo, "b": Photo, "empty": false} or {"empty": true}
*/
func (handler *Handler) nextPair(writer http.ResponseWriter, request *http.Request) {
	pair, err := handler.service.NextPair(request.Context(), requestutil.ViewerID(request))
	if errors.Is(err, ErrEmpty) {
		respond.OK(writer, pairResponse{Empty: true})
		return
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pairResponse{Pair: pair})
}

/*
POST /api/v1/battles.

Request:
  - Body: {"winner_id": string, "loser_id": string}

Response:
  - 201: Result
  - 404: Either photo missing or not active
  - 409: winner_id == loser_id
  - 503: Retries exhausted (retryable)
*/
func (handler *Handler) recordComparison(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		WinnerID string `json:"winner_id"`
		LoserID  string `json:"loser_id"`
	}
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.RecordComparison(request.Context(), body.WinnerID, body.LoserID, requestutil.ViewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}
