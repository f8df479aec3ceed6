// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes every HTTP body the API produces.

Success bodies are {"data": ...}, optionally with "meta" for paginated lists.
Error bodies are flat: {"error", "code", "retryable", "details", "request_id"}.
Clients key their retry prompt off "retryable" alone.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/ctxutil"
	"github.com/taibuivan/snapduel/pkg/pagination"
)

// SuccessEnvelope wraps single resources.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps one page of a list.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error     string              `json:"error"`
	Code      string              `json:"code"`
	Retryable bool                `json:"retryable,omitempty"`
	Details   []apperr.FieldError `json:"details,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// JSON writes payload with statusCode. Encoding failures are logged; the
// status line has already been sent by then.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.Header().Set("Cache-Control", "no-store")
	writer.WriteHeader(statusCode)

	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		slog.Default().Warn("response_encode_failed", slog.Any("error", err))
	}
}

// OK writes 200 with data.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes 201 with data.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes 200 with one page and its meta block.
func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

// NoContent writes 204.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error renders err as an [ErrorEnvelope].

An error without an [apperr.AppError] in its chain becomes a 500 whose
message hides the cause. Every 5xx is logged with its cause on the request
logger.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request_failed",
			slog.String("code", appErr.Code),
			slog.Bool("retryable", appErr.Retryable),
			slog.Any("cause", causeOf(appErr, err)),
		)
	}

	JSON(writer, appErr.HTTPStatus, ErrorEnvelope{
		Error:     appErr.Message,
		Code:      appErr.Code,
		Retryable: appErr.Retryable,
		Details:   appErr.Details,
		RequestID: ctxutil.GetRequestID(ctx),
	})
}

func causeOf(appErr *apperr.AppError, err error) error {
	if appErr.Cause != nil {
		return appErr.Cause
	}
	return err
}
