// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/snapduel/internal/platform/metrics"
)

// Command result labels.
const (
	resultOK    = "ok"
	resultMiss  = "miss"
	resultError = "error"
)

// metricsHook records the latency of every command and pipeline.
type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(context stdctx.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(context, cmd)
		metrics.CacheCommandDuration.WithLabelValues(cmd.Name(), commandResult(err)).Observe(time.Since(start).Seconds())
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(context stdctx.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(context, cmds)
		metrics.CacheCommandDuration.WithLabelValues("pipeline", commandResult(err)).Observe(time.Since(start).Seconds())
		return err
	}
}

// commandResult classifies err; [redis.Nil] is a miss, not a failure.
func commandResult(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, redis.Nil):
		return resultMiss
	default:
		return resultError
	}
}
