// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snapduel/internal/platform/ctxutil"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
)

// responseRecorder captures the status and body size written downstream.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (recorder *responseRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *responseRecorder) Write(body []byte) (int, error) {
	written, err := recorder.ResponseWriter.Write(body)
	recorder.bytes += written
	return written, err
}

/*
StructuredLogger puts a request-scoped logger on the context and emits one
"http_request_finished" event per request.

Level follows the status: 5xx logs at error, 4xx at warn, everything else at
info. Health and scrape paths log at debug so they do not drown real traffic.
*/
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &responseRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			elapsed := time.Since(started)

			route := ""
			if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
				route = routeContext.RoutePattern()
			}
			metrics.ObserveRequest(request.Method, route, recorder.status, elapsed.Seconds())

			requestLogger.Log(ctx, levelFor(request.URL.Path, recorder.status), "http_request_finished",
				slog.Int("status", recorder.status),
				slog.Int("bytes", recorder.bytes),
				slog.Int64("latency_ms", elapsed.Milliseconds()),
				slog.String("route", route),
				slog.String("ip", RealIP(request)),
			)
		})
	}
}

func levelFor(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case path == "/health" || path == "/ready" || path == "/metrics":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
