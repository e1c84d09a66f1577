// Package health verifies that the service's dependencies are reachable.
//
// It backs the `status` command and can be reused by any monitor that needs
// a single healthy/unhealthy answer plus per-dependency details.
package health

import (
	"context"
	"time"

	"github.com/deppfellow/lightbnb/internal/logger"
	"github.com/rs/zerolog"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// Pinger is a dependency that can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// EventRecorder receives custom events for failed checks.
// *newrelic.Application satisfies it.
type EventRecorder interface {
	RecordCustomEvent(eventType string, params map[string]any)
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Report aggregates every check run by Checker.Run.
type Report struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// Healthy reports whether every enabled check passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Checker runs the configured dependency checks.
type Checker struct {
	environment string
	checks      []string
	pingers     map[string]Pinger
	timeout     time.Duration
	events      EventRecorder
	logger      *zerolog.Logger
}

// NewChecker runs the named checks against pingers. A configured check with
// no pinger is reported as disabled. events may be nil.
func NewChecker(environment string, checks []string, pingers map[string]Pinger, timeout time.Duration, events EventRecorder, logger *zerolog.Logger) *Checker {
	return &Checker{
		environment: environment,
		checks:      checks,
		pingers:     pingers,
		timeout:     timeout,
		events:      events,
		logger:      logger,
	}
}

// Run executes every check, each bounded by the configured timeout.
func (c *Checker) Run(ctx context.Context) Report {
	start := time.Now()
	log := logger.FromContext(ctx, c.logger).With().Str("operation", "health_check").Logger()

	report := Report{
		Status:      StatusHealthy,
		Timestamp:   start.UTC(),
		Environment: c.environment,
		Checks:      make(map[string]CheckResult, len(c.checks)),
	}

	for _, name := range c.checks {
		pinger, ok := c.pingers[name]
		if !ok || pinger == nil {
			report.Checks[name] = CheckResult{Status: StatusDisabled}
			continue
		}

		result := c.check(ctx, name, pinger, &log)
		if result.Status != StatusHealthy {
			report.Status = StatusUnhealthy
		}
		report.Checks[name] = result
	}

	if !report.Healthy() {
		log.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		c.record(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return report
	}

	log.Info().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return report
}

func (c *Checker) check(ctx context.Context, name string, pinger Pinger, log *zerolog.Logger) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := pinger.Ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		c.record(map[string]any{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	log.Debug().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return CheckResult{
		Status:       StatusHealthy,
		ResponseTime: elapsed.String(),
	}
}

func (c *Checker) record(params map[string]any) {
	if c.events != nil {
		c.events.RecordCustomEvent("HealthCheckError", params)
	}
}
