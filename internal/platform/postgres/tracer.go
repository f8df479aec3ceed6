// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/snapduel/internal/platform/metrics"
)

// maxLoggedSQL truncates statements in slow query logs.
const maxLoggedSQL = 240

type traceKey struct{}

type traceStart struct {
	sql string
	at  time.Time
}

// SlowQueryTracer is a [pgx.QueryTracer] that logs statements slower than a
// threshold. Arguments are never logged since they carry user data.
type SlowQueryTracer struct {
	threshold time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewSlowQueryTracer constructs a [SlowQueryTracer].
func NewSlowQueryTracer(threshold time.Duration, logger *slog.Logger) *SlowQueryTracer {
	return &SlowQueryTracer{threshold: threshold, logger: logger, now: time.Now}
}

// TraceQueryStart stamps the statement start time on the context.
func (tracer *SlowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, at: tracer.now()})
}

// TraceQueryEnd logs the statement when it exceeded the threshold.
func (tracer *SlowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}

	elapsed := tracer.now().Sub(start.at)
	if elapsed < tracer.threshold {
		return
	}

	metrics.SlowQueriesTotal.Inc()

	attrs := []any{
		slog.Duration("elapsed", elapsed),
		slog.String("sql", compactSQL(start.sql)),
		slog.Int64("rows", data.CommandTag.RowsAffected()),
	}
	if data.Err != nil {
		attrs = append(attrs, slog.Any("error", data.Err))
	}

	tracer.logger.WarnContext(ctx, "slow_query", attrs...)
}

// compactSQL folds whitespace so multi-line statements log on one line.
func compactSQL(sql string) string {
	compact := strings.Join(strings.Fields(sql), " ")
	if len(compact) > maxLoggedSQL {
		return compact[:maxLoggedSQL] + "..."
	}
	return compact
}
