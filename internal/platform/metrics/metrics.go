// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

// Package metrics defines Prometheus metrics for the Metaversitas API.
//
// All metrics are registered with a private registry served on /metrics.
//
// Metric naming follows Prometheus conventions:
//   - metaversitas_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exported by the service.
var Registry = prometheus.NewRegistry()

var (
	// SessionValidationsTotal counts gate outcomes: validated, refreshed, rejected.
	SessionValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metaversitas_session_validations_total",
			Help: "Session validations by outcome.",
		},
		[]string{"outcome"},
	)

	// SessionsIssuedTotal counts credentials created at login.
	SessionsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "metaversitas_sessions_issued_total",
			Help: "Total number of sessions issued.",
		},
	)

	// SessionsEndedTotal counts logouts.
	SessionsEndedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "metaversitas_sessions_ended_total",
			Help: "Total number of sessions ended by logout.",
		},
	)

	// LoginsTotal counts login attempts by transport format and result kind.
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metaversitas_logins_total",
			Help: "Login attempts by format and result.",
		},
		[]string{"format", "result"},
	)

	// ProfileCacheTotal counts profile cache lookups by result: hit, miss, error.
	ProfileCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metaversitas_profile_cache_total",
			Help: "Profile cache lookups by result.",
		},
		[]string{"result"},
	)

	// HTTPRequestDurationSeconds is a histogram of request latency.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metaversitas_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status class.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		SessionValidationsTotal,
		SessionsIssuedTotal,
		SessionsEndedTotal,
		LoginsTotal,
		ProfileCacheTotal,
		HTTPRequestDurationSeconds,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordValidation records one session validation outcome.
func RecordValidation(outcome string) {
	SessionValidationsTotal.WithLabelValues(outcome).Inc()
}

// RecordLogin records a login attempt.
func RecordLogin(format, result string) {
	LoginsTotal.WithLabelValues(format, result).Inc()
}

// RecordProfileCache records a profile cache lookup.
func RecordProfileCache(result string) {
	ProfileCacheTotal.WithLabelValues(result).Inc()
}

// RecordRequest records the latency of a finished HTTP request.
func RecordRequest(method, route, status string, duration time.Duration) {
	HTTPRequestDurationSeconds.WithLabelValues(method, route, status).Observe(duration.Seconds())
}
