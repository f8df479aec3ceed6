// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entitlement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snapduel/internal/platform/middleware"
	requestutil "github.com/taibuivan/snapduel/internal/platform/request"
	"github.com/taibuivan/snapduel/internal/platform/respond"
	"github.com/taibuivan/snapduel/internal/platform/sec"
)

// Handler implements the grant endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new entitlement [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /entitlements. Every route requires admin.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/subscriptions", handler.grantSubscription)
	router.Post("/purchases", handler.recordPurchase)

	return router
}

/*
POST /api/v1/entitlements/subscriptions.

Request:
  - Body: SubscriptionInput

Response:
  - 200: Subscription
*/
func (handler *Handler) grantSubscription(writer http.ResponseWriter, request *http.Request) {
	var input SubscriptionInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscription, err := handler.service.GrantSubscription(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, subscription)
}

/*
POST /api/v1/entitlements/purchases.

Response:
  - 201: Purchase recorded
  - 200: Duplicate, nothing written
*/
func (handler *Handler) recordPurchase(writer http.ResponseWriter, request *http.Request) {
	var input PurchaseInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	purchase, created, err := handler.service.RecordPurchase(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !created {
		respond.OK(writer, purchase)
		return
	}

	respond.Created(writer, purchase)
}
