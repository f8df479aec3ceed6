// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snapduel/internal/platform/middleware"
	requestutil "github.com/taibuivan/snapduel/internal/platform/request"
	"github.com/taibuivan/snapduel/internal/platform/respond"
	"github.com/taibuivan/snapduel/internal/platform/sec"
	"github.com/taibuivan/snapduel/pkg/pagination"
)

// Handler implements the HTTP layer for reports.
type Handler struct {
	service *Service
}

// NewHandler constructs a new moderation [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /reports.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireAuth).Post("/", handler.fileReport)

	router.Group(func(moderator chi.Router) {
		moderator.Use(middleware.RequireRole(sec.RoleModerator))
		moderator.Get("/", handler.listReports)
		moderator.Post("/{id}/resolve", handler.resolveReport)
	})

	return router
}

/*
POST /api/v1/reports.

Request:
  - Body: {"photo_id": string, "reason": string}

Response:
  - 201: Report
  - 404: Unknown photo
  - 409: A pending report already exists
*/
func (handler *Handler) fileReport(writer http.ResponseWriter, request *http.Request) {
	reporterID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input FileReportInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.FileReport(request.Context(), reporterID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}

/*
GET /api/v1/reports.

Request:
  - status: pending (default) | resolved | dismissed
  - page, limit: pagination window

Response:
  - 200: []Report with meta
*/
func (handler *Handler) listReports(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	reports, total, err := handler.service.ListReports(request.Context(), Status(request.URL.Query().Get("status")), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reports, pagination.NewMeta(params, total))
}

/*
POST /api/v1/reports/{id}/resolve.

Request:
  - Body: {"outcome": "resolved" | "dismissed"}

Response:
  - 200: Report
  - 409: Report already closed
*/
func (handler *Handler) resolveReport(writer http.ResponseWriter, request *http.Request) {
	moderatorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ResolveInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.ResolveReport(request.Context(), moderatorID, requestutil.Param(request, "id"), input.Outcome)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
