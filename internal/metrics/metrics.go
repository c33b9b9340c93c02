// Package metrics provides Prometheus instrumentation for the site.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Zachkp/portfolio/internal/generate"
	"github.com/Zachkp/portfolio/internal/lifecycle"
)

var (
	// GenerationAttempts counts every transport attempt by outcome.
	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_generation_attempts_total",
			Help: "Text generation attempts by outcome.",
		},
		[]string{"outcome"}, // "success", "transport", "malformed", "cancelled", "error"
	)

	// GenerationLatency tracks single-attempt latency in seconds.
	GenerationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_generation_attempt_latency_seconds",
			Help:    "Latency of a single text generation attempt in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// ActionResults counts settled AI actions.
	ActionResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_ai_action_results_total",
			Help: "Settled AI actions by action and result.",
		},
		[]string{"action", "result"}, // result: "succeeded", "failed", "disabled"
	)

	// RejectedTriggers counts AI triggers that never reached the backend.
	RejectedTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_ai_rejected_triggers_total",
			Help: "AI triggers rejected before reaching the backend.",
		},
		[]string{"action", "reason"}, // reason: "busy", "rate_limited"
	)

	// PageViews counts tracked page views, whether or not they are persisted.
	PageViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_page_views_total",
			Help: "Page views seen by the visitor middleware.",
		},
	)

	// ActiveSessions is the number of live visitor sessions.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_active_sessions",
			Help: "Visitor sessions currently held in memory.",
		},
	)
)

// ObserveAttempt is a generate.Observer.
func ObserveAttempt(_ context.Context, a generate.Attempt) {
	GenerationLatency.Observe(a.Latency.Seconds())
	GenerationAttempts.WithLabelValues(attemptOutcome(a.Err)).Inc()
}

func attemptOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, generate.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, generate.ErrTransport):
		return "transport"
	default:
		return "error"
	}
}

// ObserveSnapshot records resolved phases of action; other phases are
// ignored.
func ObserveSnapshot(action string, snap lifecycle.Snapshot) {
	switch {
	case snap.Phase == lifecycle.Succeeded:
		ActionResults.WithLabelValues(action, "succeeded").Inc()
	case snap.Phase == lifecycle.Failed && snap.Disabled:
		ActionResults.WithLabelValues(action, "disabled").Inc()
	case snap.Phase == lifecycle.Failed:
		ActionResults.WithLabelValues(action, "failed").Inc()
	}
}
