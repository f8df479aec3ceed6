// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/snapduel/internal/platform/postgres"
)

func trace(tracer *postgres.SlowQueryTracer, sql string) {
	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: sql, Args: []any{"secret"}})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("UPDATE 2")})
}

/*
TestSlowQueryTracer logs statements over the threshold on one line without
their arguments.
*/
func TestSlowQueryTracer(t *testing.T) {
	var buffer bytes.Buffer
	tracer := postgres.NewSlowQueryTracer(0, slog.New(slog.NewTextHandler(&buffer, nil)))

	trace(tracer, "UPDATE core.photo\n\t\tSET rating = $2\n\t\tWHERE id = $1")

	out := buffer.String()
	assert.Contains(t, out, "slow_query")
	assert.Contains(t, out, "UPDATE core.photo SET rating = $2 WHERE id = $1")
	assert.Contains(t, out, "rows=2")
	assert.NotContains(t, out, "secret")
}

/*
TestSlowQueryTracer_BelowThreshold stays quiet for fast statements.
*/
func TestSlowQueryTracer_BelowThreshold(t *testing.T) {
	var buffer bytes.Buffer
	tracer := postgres.NewSlowQueryTracer(time.Hour, slog.New(slog.NewTextHandler(&buffer, nil)))

	trace(tracer, "SELECT 1")

	assert.Empty(t, buffer.String())
}

/*
TestSlowQueryTracer_Truncates long statements.
*/
func TestSlowQueryTracer_Truncates(t *testing.T) {
	var buffer bytes.Buffer
	tracer := postgres.NewSlowQueryTracer(0, slog.New(slog.NewTextHandler(&buffer, nil)))

	trace(tracer, "SELECT "+strings.Repeat("x, ", 200)+"y")

	assert.Contains(t, buffer.String(), "...")
	assert.NotContains(t, buffer.String(), " y")
}
