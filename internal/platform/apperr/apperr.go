// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by services and handlers.

Services return *AppError values (or wrap them); respond.Error turns them
into HTTP envelopes. Anything else reaching a handler is a bug and is
reported as INTERNAL_ERROR.

Kinds used by the domain:

  - NotFound: a referenced photo, user or grant does not exist, or is hidden.
  - Conflict: degenerate input such as a photo battling itself, or a
    uniqueness violation.
  - Validation: malformed ids, unknown tiers or verdicts, bad lengths.
  - Unauthorized / Forbidden: identity missing or role too low.
  - Upstream: storage failed or rating retries ran out; safe to retry.

An empty battle pool or swipe deck is a normal result, not an error.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes sent to clients in the "code" field.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUpstream     = "UPSTREAM_ERROR"
)

// AppError carries what a handler needs to answer: status, code, a message
// safe for clients and the retry hint. Cause stays server side.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Retryable  bool         `json:"retryable,omitempty"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # 4xx

// NotFound reports a missing resource, e.g. NotFound("Photo") reads
// "Photo not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

// Unauthorized reports a missing or invalid identity.
func Unauthorized(message string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

// Forbidden reports an identity without the required role.
func Forbidden(message string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

// Conflict reports degenerate input or a uniqueness violation.
func Conflict(message string) *AppError {
	return newError(CodeConflict, http.StatusConflict, message)
}

// ValidationError reports rejected input with per-field details.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(CodeValidation, http.StatusBadRequest, message)
	err.Details = details
	return err
}

// RateLimited reports an exhausted limiter budget.
func RateLimited(retryAfterSeconds int) *AppError {
	err := newError(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests, retry in %ds", retryAfterSeconds))
	err.Retryable = true
	return err
}

// # 5xx

// Upstream reports a storage failure the client may retry.
func Upstream(cause error) *AppError {
	err := newError(CodeUpstream, http.StatusServiceUnavailable, "A storage dependency failed, please retry")
	err.Retryable = true
	err.Cause = cause
	return err
}

// Internal reports a bug. The message never includes the cause.
func Internal(cause error) *AppError {
	err := newError(CodeInternal, http.StatusInternalServerError, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError reports whether err's chain contains an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// HasCode reports whether err's chain carries code.
func HasCode(err error, code string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == code
}
