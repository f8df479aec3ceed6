// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/snapduel/internal/platform/constants"
	"github.com/taibuivan/snapduel/internal/platform/respond"
)

// checkTimeout bounds each dependency check so a hung backend cannot stall
// readiness.
const checkTimeout = 2 * time.Second

// HealthDependencies are the checks behind /ready. Nil checks are skipped.
type HealthDependencies struct {
	CheckDatabase func(context.Context) error
	CheckCache    func(context.Context) error

	// BreakerState is reported but never fails readiness: with the breaker
	// open gated photos are denied while free ones still serve.
	BreakerState func() string
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	State string `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

type dependencyCheck struct {
	name  string
	check func(context.Context) error
}

// NewHealthHandlers returns the /health and /ready handlers.
func NewHealthHandlers(dependencies HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
	}

	checks := make([]dependencyCheck, 0, 2)
	if dependencies.CheckDatabase != nil {
		checks = append(checks, dependencyCheck{"postgres", dependencies.CheckDatabase})
	}
	if dependencies.CheckCache != nil {
		checks = append(checks, dependencyCheck{"redis", dependencies.CheckCache})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := runChecks(request.Context(), checks, logger)

		status, code := "ready", http.StatusOK
		for _, result := range results {
			if !result.IsOK {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}

		if dependencies.BreakerState != nil {
			state := dependencies.BreakerState()
			results = append(results, checkResult{Name: "entitlements", IsOK: state != "open", State: state})
		}

		respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
			constants.FieldStatus: status,
			constants.FieldChecks: results,
		}})
	}

	return liveness, readiness
}

// runChecks runs every check concurrently; results keep input order.
func runChecks(parent context.Context, checks []dependencyCheck, logger *slog.Logger) []checkResult {
	results := make([]checkResult, len(checks))

	var group errgroup.Group
	for index, current := range checks {
		group.Go(func() error {
			context, cancel := context.WithTimeout(parent, checkTimeout)
			defer cancel()

			results[index] = checkResult{Name: current.name, IsOK: true}
			if err := current.check(context); err != nil {
				results[index].IsOK = false
				results[index].Error = err.Error()
				logger.ErrorContext(parent, "readiness_check_failed",
					slog.String("dependency", current.name), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = group.Wait()

	return results
}
