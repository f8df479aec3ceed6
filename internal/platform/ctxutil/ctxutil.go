// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values through [context.Context].
//
// The keys are unexported so only this package can read or write them; the
// middleware sets them and handlers read them back through the getters.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/snapduel/internal/platform/sec"
)

// valueKey is private so values cannot collide with other packages.
type valueKey uint8

const (
	requestIDKey valueKey = iota + 1
	claimsKey
	loggerKey
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuthUser returns a new context with the provided auth claims attached.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey, user)
}

// GetAuthUser retrieves the [*sec.AuthClaims] from the [context.Context].
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(claimsKey).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// ViewerID returns the authenticated user ID, or nil for anonymous requests.
//
// Services take the viewer as an explicit optional identity; this is the only
// place where the request context is translated into that parameter.
func ViewerID(ctx context.Context) *string {
	claims := GetAuthUser(ctx)
	if claims == nil || claims.UserID == "" {
		return nil
	}
	id := claims.UserID
	return &id
}
