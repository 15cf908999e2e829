// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the identity server.
//
// All record methods are safe on a nil *Metrics, so components built
// without metrics (tests, tools) need no special casing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gsc_identity"

// Outcome labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Reset token events.
const (
	ResetIssued   = "issued"
	ResetConsumed = "consumed"
	ResetExpired  = "expired"
	ResetInvalid  = "invalid"
)

// Metrics contains the custom collectors.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	AuthAttempts     *prometheus.CounterVec
	PlayerIDsIssued  *prometheus.CounterVec
	ResetTokens      *prometheus.CounterVec
	ArtifactDeletes  *prometheus.CounterVec
	TaskFailures     *prometheus.CounterVec
	TasksDropped     prometheus.Counter
	ResetTokensSwept prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewRegistry returns a registry preloaded with the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetrics creates the collectors and registers them with reg.
// Panics if registration fails (following prometheus convention).
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Authentication attempts by result",
			},
			[]string{"result"},
		),
		PlayerIDsIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "player_ids_issued_total",
				Help:      "Player identifiers issued by period",
			},
			[]string{"period"},
		),
		ResetTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reset_tokens_total",
				Help:      "Password reset token events",
			},
			[]string{"event"},
		),
		ArtifactDeletes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "artifact_deletions_total",
				Help:      "Artifact deletion attempts by status",
			},
			[]string{"status"},
		),
		TaskFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "task_failures_total",
				Help:      "Failed background tasks by name",
			},
			[]string{"task"},
		),
		TasksDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_dropped_total",
			Help:      "Background tasks rejected because the dispatcher was stopped",
		}),
		ResetTokensSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reset_tokens_swept_total",
			Help:      "Expired reset tokens removed by the sweeper",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.AuthAttempts,
		m.PlayerIDsIssued,
		m.ResetTokens,
		m.ArtifactDeletes,
		m.TaskFailures,
		m.TasksDropped,
		m.ResetTokensSwept,
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *Metrics) RecordAuthAttempt(result string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordPlayerIDIssued(period string) {
	if m == nil {
		return
	}
	m.PlayerIDsIssued.WithLabelValues(period).Inc()
}

// RecordResetToken counts a reset token event (use Reset* constants).
func (m *Metrics) RecordResetToken(event string) {
	if m == nil {
		return
	}
	m.ResetTokens.WithLabelValues(event).Inc()
}

func (m *Metrics) RecordArtifactDeletion(status string) {
	if m == nil {
		return
	}
	m.ArtifactDeletes.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordTaskFailure(task string) {
	if m == nil {
		return
	}
	m.TaskFailures.WithLabelValues(task).Inc()
}

func (m *Metrics) RecordTaskDropped() {
	if m == nil {
		return
	}
	m.TasksDropped.Inc()
}

func (m *Metrics) RecordResetTokensSwept(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.ResetTokensSwept.Add(float64(n))
}
