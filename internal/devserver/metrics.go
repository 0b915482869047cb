// CLASSIFICATION: COMMUNITY
// Filename: metrics.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package devserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "corsserve"

// Metrics holds the Prometheus collectors for served requests and watched
// file-system changes. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	fsEvents *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Requests served, by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent serving a request.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		fsEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fs_events_total",
			Help:      "File-system changes seen under the served root.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.requests, m.duration, m.fsEvents)
	return m
}

func (m *Metrics) observe(method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveFSEvent counts one file-system change.
func (m *Metrics) ObserveFSEvent(op string) {
	if m == nil {
		return
	}
	m.fsEvents.WithLabelValues(op).Inc()
}

// MetricsHandler exposes g in the Prometheus text format.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ServeMetrics serves MetricsHandler(g) at /metrics on ln until ctx is done.
// It runs on its own listener so the served tree is never shadowed.
func ServeMetrics(ctx context.Context, ln net.Listener, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(g))
	return serveUntilDone(ctx, &http.Server{Handler: mux}, ln, defaultShutdownTimeout)
}
