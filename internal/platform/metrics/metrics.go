// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics provides Prometheus metrics for the SnapDuel API.
//
// Metrics Categories:
//   - HTTP: request latency by route pattern and status, limiter rejections
//   - Comparisons: recorded battles, optimistic-concurrency retries, swipe verdicts
//   - Access: per-tier decisions and fail-closed events
//   - Selection: empty pair/deck results
//   - Cache: ranking cache hits and misses, Redis command latency
//   - Database: slow statements
//   - Moderation: reports and bans
//
// Usage:
//
//	metrics.ComparisonsTotal.WithLabelValues(metrics.ResultRecorded).Inc()
//	metrics.RecordAccessDecision("paid", false)
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels shared by the write counters.
const (
	ResultRecorded  = "recorded"
	ResultDuplicate = "duplicate"
	ResultRejected  = "rejected"
	ResultFailed    = "failed"
)

// Moderation action labels.
const (
	ModerationReport  = "report"
	ModerationResolve = "resolve"
	ModerationDismiss = "dismiss"
	ModerationBan     = "ban"
	ModerationUnban   = "unban"
)

var (
	// HTTPRequestDuration tracks request latency per route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snapduel_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RateLimitedTotal counts requests rejected by a limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_rate_limited_total",
			Help: "Total number of requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	// ComparisonsTotal counts pairwise comparisons by outcome.
	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_comparisons_total",
			Help: "Total number of pairwise comparisons by result",
		},
		[]string{"result"},
	)

	// RatingRetriesTotal counts transaction retries caused by concurrent rating writers.
	RatingRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapduel_rating_retries_total",
			Help: "Total number of rating transactions retried after a concurrency conflict",
		},
	)

	// SwipeJudgmentsTotal counts single-photo judgments by verdict.
	SwipeJudgmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_swipe_judgments_total",
			Help: "Total number of swipe judgments by verdict",
		},
		[]string{"verdict"},
	)

	// AccessDecisionsTotal counts resolver decisions by tier and outcome.
	AccessDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_access_decisions_total",
			Help: "Total number of per-photo access decisions",
		},
		[]string{"tier", "decision"},
	)

	// AccessFailClosedTotal counts entitlement lookups that failed and were denied.
	AccessFailClosedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_access_fail_closed_total",
			Help: "Total number of entitlement lookups that failed closed",
		},
		[]string{"lookup"},
	)

	// SelectionEmptyTotal counts selector calls that found no content.
	SelectionEmptyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_selection_empty_total",
			Help: "Total number of pair or deck selections that returned no content",
		},
		[]string{"mode"},
	)

	// RankingCacheTotal counts ranking cache lookups by result.
	RankingCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_ranking_cache_total",
			Help: "Total number of ranking cache lookups by result",
		},
		[]string{"result"},
	)

	// CacheCommandDuration tracks Redis round trips per command.
	CacheCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snapduel_cache_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"command", "result"},
	)

	// SlowQueriesTotal counts statements slower than the configured threshold.
	SlowQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapduel_db_slow_queries_total",
			Help: "Total number of SQL statements that exceeded the slow query threshold",
		},
	)

	// EntitlementGrantsTotal counts subscription and purchase grants.
	EntitlementGrantsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_entitlement_grants_total",
			Help: "Total number of entitlement grants by kind and result",
		},
		[]string{"kind", "result"},
	)

	// ModerationActionsTotal counts reports filed, reports closed and bans.
	ModerationActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapduel_moderation_actions_total",
			Help: "Total number of moderation actions by kind",
		},
		[]string{"action"},
	)
)

// RecordAccessDecision increments the decision counter for one photo.
func RecordAccessDecision(tier string, viewable bool) {
	decision := "deny"
	if viewable {
		decision = "allow"
	}
	AccessDecisionsTotal.WithLabelValues(tier, decision).Inc()
}

// ObserveRequest records the latency of one finished HTTP request.
func ObserveRequest(method, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
