// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP decorators mounted by the api package.

Global chain, outermost first:

  - RequestID: correlation id on the context and the response.
  - StructuredLogger: per-request slog logger and latency histogram.
  - RateLimiter: per-client token buckets; a second, stricter instance guards
    the vote endpoints and is keyed by viewer.
  - PanicRecovery: converts panics into 500 envelopes.
  - Authenticate: optional bearer token; anonymous requests pass through.
  - CORS: origin allow-list by domain suffix.
*/
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/taibuivan/snapduel/internal/platform/constants"
	"github.com/taibuivan/snapduel/internal/platform/ctxutil"
	"github.com/taibuivan/snapduel/pkg/uuid"
)

// # Request Tracing

// RequestID propagates a client X-Request-ID when it is well formed and
// mints a UUIDv7 otherwise.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !validRequestID(requestID) {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// validRequestID accepts short ids made of URL-safe characters only, so a
// client cannot inject log separators or oversized values.
func validRequestID(id string) bool {
	if id == "" || len(id) > constants.MaxRequestIDLength {
		return false
	}
	for _, char := range id {
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
		case char == '-', char == '_', char == '.':
		default:
			return false
		}
	}
	return true
}

// # Client Address

// RealIP returns the client address, preferring X-Real-IP, then the first
// X-Forwarded-For hop, then the socket peer.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
