// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/constants"
	"github.com/taibuivan/snapduel/internal/platform/ctxutil"
	"github.com/taibuivan/snapduel/internal/platform/metrics"
	"github.com/taibuivan/snapduel/internal/platform/respond"
)

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(*http.Request) string

// ByIP charges the client address.
func ByIP(request *http.Request) string {
	return "ip:" + RealIP(request)
}

// ByViewer charges the authenticated user, falling back to the client
// address for anonymous requests. Must run after [Authenticate].
func ByViewer(request *http.Request) string {
	if viewer := ctxutil.ViewerID(request.Context()); viewer != nil {
		return "user:" + *viewer
	}
	return ByIP(request)
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key.
type RateLimiter struct {
	name    string
	rps     rate.Limit
	burst   int
	key     KeyFunc
	methods map[string]bool
	now     func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// LimiterOption customises a [RateLimiter].
type LimiterOption func(*RateLimiter)

// WithName labels rejections in metrics.
func WithName(name string) LimiterOption {
	return func(limiter *RateLimiter) { limiter.name = name }
}

// WithKey replaces [ByIP].
func WithKey(key KeyFunc) LimiterOption {
	return func(limiter *RateLimiter) { limiter.key = key }
}

// WithMethods restricts the limiter to the given methods; other requests pass free.
func WithMethods(methods ...string) LimiterOption {
	return func(limiter *RateLimiter) {
		limiter.methods = make(map[string]bool, len(methods))
		for _, method := range methods {
			limiter.methods[method] = true
		}
	}
}

// WithLimiterClock replaces time.Now.
func WithLimiterClock(now func() time.Time) LimiterOption {
	return func(limiter *RateLimiter) { limiter.now = now }
}

// NewRateLimiter builds a limiter refilling rps tokens per second up to
// burst. Idle buckets are evicted until ctx is cancelled.
func NewRateLimiter(ctx context.Context, rps float64, burst int, opts ...LimiterOption) *RateLimiter {
	limiter := &RateLimiter{
		name:    "global",
		rps:     rate.Limit(rps),
		burst:   burst,
		key:     ByIP,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(limiter)
	}

	go limiter.evictLoop(ctx)

	return limiter
}

func (limiter *RateLimiter) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.evictIdle()
		}
	}
}

func (limiter *RateLimiter) evictIdle() {
	cutoff := limiter.now().Add(-constants.RateLimitClientTTL)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	for key, entry := range limiter.buckets {
		if entry.lastSeen.Before(cutoff) {
			delete(limiter.buckets, key)
		}
	}
}

// Allow reports whether one more request for key fits the budget.
func (limiter *RateLimiter) Allow(key string) bool {
	ok, _ := limiter.take(key)
	return ok
}

// take consumes a token, or reports how long until one is available.
func (limiter *RateLimiter) take(key string) (bool, time.Duration) {
	now := limiter.now()

	limiter.mu.Lock()
	entry, found := limiter.buckets[key]
	if !found {
		entry = &bucket{limiter: rate.NewLimiter(limiter.rps, limiter.burst)}
		limiter.buckets[key] = entry
	}
	entry.lastSeen = now
	limiter.mu.Unlock()

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second
	}

	wait := reservation.DelayFrom(now)
	if wait == 0 {
		return true, 0
	}

	reservation.CancelAt(now)
	return false, wait
}

// Middleware rejects over-budget requests with 429 and a Retry-After header.
func (limiter *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if limiter.methods != nil && !limiter.methods[request.Method] {
			next.ServeHTTP(writer, request)
			return
		}

		ok, wait := limiter.take(limiter.key(request))
		if ok {
			next.ServeHTTP(writer, request)
			return
		}

		seconds := max(1, int(math.Ceil(wait.Seconds())))
		metrics.RateLimitedTotal.WithLabelValues(limiter.name).Inc()
		writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(seconds))
		respond.Error(writer, request, apperr.RateLimited(seconds))
	})
}
