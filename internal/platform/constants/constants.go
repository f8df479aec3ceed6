// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across layers: server
deadlines, limiter budgets, token lifetimes, header names and cache key
prefixes. Anything an operator may want to tune lives in config instead.
*/
package constants

import "time"

const (
	AppName    = "snapduel-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 90 * time.Second

	// GlobalRequestTimeout bounds a request end to end. The pool derives the
	// per-connection statement timeout from it.
	GlobalRequestTimeout = 10 * time.Second

	// ShutdownTimeout lets in-flight votes commit before the process exits.
	ShutdownTimeout = 20 * time.Second
)

// # Rate Limiting

const (
	// Per-client budget for every endpoint.
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	// Per-voter budget for the comparison and judgment endpoints, which move
	// ratings and must not be scriptable.
	VotesPerMinute = 40
	VoteBurst      = 10

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 5 * time.Minute
)

// # Authentication

const (
	AuthIssuer     = "snapduel.app"
	AccessTokenTTL = 12 * time.Hour
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXRequestID    = "X-Request-ID"
)

// MaxRequestIDLength caps client supplied correlation ids.
const MaxRequestIDLength = 64

// # JSON Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Cache Keys

// RedisPrefixRanking namespaces the cached top-rated lists, one key per tag.
const RedisPrefixRanking = "snapduel:ranking:"
